package image_store

type Store interface {
	Save(data []byte, prompt, userID string) (string, error)
	Load(path string) ([]byte, error)
}

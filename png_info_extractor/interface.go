package png_info_extractor

type Extractor interface {
	Dimensions() (int, int)
	TextChunks() map[string]string
}

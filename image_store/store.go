package image_store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"stickerme_bot/clock"
)

const DefaultDir = "images"

// maxNameAttempts bounds the numeric suffixes tried when a filename is taken.
const maxNameAttempts = 100

type storeImpl struct {
	dir   string
	clock clock.Clock
}

type Config struct {
	Dir   string
	Clock clock.Clock
}

// New creates the image directory if it does not exist yet.
func New(cfg Config) (Store, error) {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.NewClock()
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, &WriteError{Path: cfg.Dir, Err: err}
	}

	return &storeImpl{
		dir:   cfg.Dir,
		clock: cfg.Clock,
	}, nil
}

func (s *storeImpl) Save(data []byte, prompt, userID string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("missing image data")
	}

	path, err := s.writeNew(Filename(s.clock.Now(), userID, prompt), data)
	if err != nil {
		return "", err
	}

	log.Info().
		Str("path", path).
		Str("size", humanize.Bytes(uint64(len(data)))).
		Msg("Saved image")

	return path, nil
}

// writeNew never overwrites an earlier image. When name is taken, _1, _2, ...
// is inserted before the extension.
func (s *storeImpl) writeNew(name string, data []byte) (string, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	ext := filepath.Ext(name)

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		candidate := name
		if attempt > 0 {
			candidate = fmt.Sprintf("%s_%d%s", base, attempt, ext)
		}

		path := filepath.Join(s.dir, candidate)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}

		if err != nil {
			return "", &WriteError{Path: path, Err: err}
		}

		_, err = file.Write(data)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}

		if err != nil {
			_ = os.Remove(path)

			return "", &WriteError{Path: path, Err: err}
		}

		return path, nil
	}

	path := filepath.Join(s.dir, name)

	return "", &WriteError{Path: path, Err: fmt.Errorf("%d names already taken: %w", maxNameAttempts, fs.ErrExist)}
}

func (s *storeImpl) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}

	return data, nil
}

// adapted from https://github.com/parsiya/Go-Security/blob/master/png-tests/png-chunk-extraction.go

package png_info_extractor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// 89 50 4E 47 0D 0A 1A 0A
const pngHeader = "\x89\x50\x4E\x47\x0D\x0A\x1A\x0A"
const iHDRLength = 13

var ErrNotPNG = errors.New("wrong PNG header")

// Each chunk starts with a uint32 length (big endian), then 4 byte name,
// then data and finally the CRC32 of the chunk data.
type chunk struct {
	cType string
	data  []byte
}

func readChunk(r io.Reader) (*chunk, error) {
	buf := make([]byte, 8)

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint32(buf[:4])

	c := &chunk{
		cType: string(buf[4:8]),
		data:  make([]byte, length),
	}

	if _, err := io.ReadFull(r, c.data); err != nil {
		return nil, err
	}

	// CRC is not checked.
	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		return nil, err
	}

	return c, nil
}

type extractorImpl struct {
	width  int
	height int
	text   map[string]string
}

type Config struct {
	PngData []byte
}

// New reads the IHDR chunk and any tEXt chunks from a PNG image.
func New(cfg Config) (Extractor, error) {
	if cfg.PngData == nil {
		return nil, errors.New("png data is nil")
	}

	r := bytes.NewReader(cfg.PngData)

	header := make([]byte, len(pngHeader))
	if _, err := io.ReadFull(r, header); err != nil || string(header) != pngHeader {
		return nil, ErrNotPNG
	}

	ihdr, err := readChunk(r)
	if err != nil {
		return nil, fmt.Errorf("read IHDR: %w", err)
	}

	if ihdr.cType != "IHDR" || len(ihdr.data) != iHDRLength {
		return nil, fmt.Errorf("invalid IHDR chunk %q of length %d", ihdr.cType, len(ihdr.data))
	}

	e := &extractorImpl{
		width:  int(binary.BigEndian.Uint32(ihdr.data[0:4])),
		height: int(binary.BigEndian.Uint32(ihdr.data[4:8])),
		text:   make(map[string]string),
	}

	if e.width <= 0 || e.height <= 0 {
		return nil, fmt.Errorf("invalid dimensions in IHDR: %dx%d", e.width, e.height)
	}

	for {
		c, err := readChunk(r)
		if err != nil {
			// a truncated trailer is tolerated, the header is what matters
			break
		}

		if c.cType == "IEND" {
			break
		}

		if c.cType != "tEXt" {
			continue
		}

		if key, value, ok := strings.Cut(string(c.data), "\x00"); ok {
			e.text[key] = value
		}
	}

	return e, nil
}

func (e *extractorImpl) Dimensions() (int, int) {
	return e.width, e.height
}

func (e *extractorImpl) TextChunks() map[string]string {
	out := make(map[string]string, len(e.text))
	for k, v := range e.text {
		out[k] = v
	}

	return out
}

package fetcher

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the frame header of a zstd stream
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// IsZstd reports whether a body is zstd compressed, by content type or magic bytes.
// The magic check covers cached bodies whose content type was lost.
func IsZstd(contentType string, body []byte) bool {
	if strings.Contains(contentType, "zstd") {
		return true
	}
	if len(body) < len(zstdMagic) {
		return false
	}
	for i, b := range zstdMagic {
		if body[i] != b {
			return false
		}
	}
	return true
}

// DecodeZstd decompresses a zstd body
func DecodeZstd(body []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	out, err := decoder.DecodeAll(body, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress zstd body: %w", err)
	}
	return out, nil
}

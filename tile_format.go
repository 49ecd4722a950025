package tileraster

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
)

type TileFormat uint8

const (
	UNKNOWN TileFormat = iota
	PNG
	JPG
	PBF
	WEBP
)

func (t TileFormat) String() string {
	switch t {
	case PNG:
		return "png"
	case JPG:
		return "jpg"
	case PBF:
		return "pbf"
	case WEBP:
		return "webp"
	default:
		return ""
	}
}

func (t TileFormat) ContentType() string {
	switch t {
	case PNG:
		return "image/png"
	case JPG:
		return "image/jpeg"
	case PBF:
		return "application/x-protobuf"
	case WEBP:
		return "image/webp"
	default:
		return ""
	}
}

// ParseTileFormat maps a format name to its TileFormat, accepting the
// common aliases.
func ParseTileFormat(s string) (TileFormat, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPG, nil
	case "pbf", "mvt":
		return PBF, nil
	case "webp":
		return WEBP, nil
	}
	return UNKNOWN, errors.Wrap(ErrUnsupportedFormat, s)
}

func detectTileFormat(data []byte) (TileFormat, error) {
	switch {
	case bytes.HasPrefix(data, []byte("\x89\x50\x4E\x47\x0D\x0A\x1A\x0A")):
		return PNG, nil
	case bytes.HasPrefix(data, []byte("\xFF\xD8\xFF")):
		return JPG, nil
	case bytes.HasPrefix(data, []byte("\x52\x49\x46\x46")) && len(data) >= 12 && bytes.Equal(data[8:12], []byte("\x57\x45\x42\x50")):
		return WEBP, nil
	}
	return UNKNOWN, errors.New("could not detect tile format")
}

package tileraster

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/pkg/errors"
)

const jpegQuality = 80

// PlacementRect pairs the source pixel rectangle of a fetched tile with the
// destination rectangle it covers in the output raster. A zero source
// rectangle means the whole tile.
type PlacementRect struct {
	SrcX      int
	SrcY      int
	SrcWidth  int
	SrcHeight int
	DstX      int
	DstY      int
	DstWidth  int
	DstHeight int
}

// RasterSurface composites decoded tiles into one output image.
type RasterSurface interface {
	DrawTile(data []byte, rect PlacementRect) error
	Encode(format TileFormat) ([]byte, error)
}

// RasterFactory creates one RasterSurface per request.
type RasterFactory interface {
	NewSurface(width, height int) (RasterSurface, error)
}

// ImageSurfaceFactory builds in-memory RGBA surfaces that scale tiles with
// approximate bilinear interpolation.
type ImageSurfaceFactory struct{}

func (ImageSurfaceFactory) NewSurface(width, height int) (RasterSurface, error) {
	if width < 1 || height < 1 {
		return nil, errors.Errorf("invalid surface size %dx%d", width, height)
	}
	return &imageSurface{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

type imageSurface struct {
	img *image.RGBA
}

func (s *imageSurface) DrawTile(data []byte, rect PlacementRect) error {
	if rect.DstWidth <= 0 || rect.DstHeight <= 0 {
		return nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "decoding tile")
	}

	srcRect := image.Rect(rect.SrcX, rect.SrcY, rect.SrcX+rect.SrcWidth, rect.SrcY+rect.SrcHeight)
	if rect.SrcWidth <= 0 || rect.SrcHeight <= 0 {
		srcRect = src.Bounds()
	}
	dstRect := image.Rect(rect.DstX, rect.DstY, rect.DstX+rect.DstWidth, rect.DstY+rect.DstHeight)

	xdraw.ApproxBiLinear.Scale(s.img, dstRect, src, srcRect, xdraw.Src, nil)
	return nil
}

func (s *imageSurface) Encode(format TileFormat) ([]byte, error) {
	buf := &bytes.Buffer{}
	switch format {
	case PNG:
		if err := png.Encode(buf, s.img); err != nil {
			return nil, errors.Wrap(err, "encoding png")
		}
	case JPG:
		if err := jpeg.Encode(buf, s.img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, errors.Wrap(err, "encoding jpeg")
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "encoding %s", format)
	}
	return buf.Bytes(), nil
}

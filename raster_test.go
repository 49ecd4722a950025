package tileraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeTestTile(t *testing.T, width, height int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func requirePixel(t *testing.T, img image.Image, x, y int, want color.RGBA) {
	t.Helper()
	r, g, b, a := img.At(x, y).RGBA()
	wr, wg, wb, wa := want.RGBA()
	require.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{r, g, b, a}, "pixel %d,%d", x, y)
}

func TestSurfaceCompositesTiles(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}

	surface, err := ImageSurfaceFactory{}.NewSurface(16, 16)
	require.NoError(t, err)

	require.NoError(t, surface.DrawTile(encodeTestTile(t, 8, 8, red), PlacementRect{
		SrcWidth: 8, SrcHeight: 8, DstX: 0, DstY: 0, DstWidth: 8, DstHeight: 8,
	}))
	require.NoError(t, surface.DrawTile(encodeTestTile(t, 8, 8, blue), PlacementRect{
		SrcWidth: 8, SrcHeight: 8, DstX: 8, DstY: 0, DstWidth: 8, DstHeight: 8,
	}))
	// zero source rect means the whole tile, here scaled 4x wide
	require.NoError(t, surface.DrawTile(encodeTestTile(t, 4, 4, green), PlacementRect{
		DstX: 0, DstY: 8, DstWidth: 16, DstHeight: 8,
	}))

	data, err := surface.Encode(PNG)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())

	requirePixel(t, img, 2, 2, red)
	requirePixel(t, img, 10, 2, blue)
	requirePixel(t, img, 3, 12, green)
	requirePixel(t, img, 13, 12, green)
}

func TestSurfaceClipsOffCanvasPlacements(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}

	surface, err := ImageSurfaceFactory{}.NewSurface(8, 8)
	require.NoError(t, err)

	require.NoError(t, surface.DrawTile(encodeTestTile(t, 8, 8, red), PlacementRect{
		SrcWidth: 8, SrcHeight: 8, DstX: -4, DstY: -4, DstWidth: 8, DstHeight: 8,
	}))

	data, err := surface.Encode(PNG)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	requirePixel(t, img, 2, 2, red)
	requirePixel(t, img, 6, 6, color.RGBA{})
}

func TestSurfaceSkipsEmptyPlacements(t *testing.T) {
	surface, err := ImageSurfaceFactory{}.NewSurface(8, 8)
	require.NoError(t, err)

	// never decoded, so undecodable bytes must not matter
	require.NoError(t, surface.DrawTile([]byte("not an image"), PlacementRect{
		DstX: 0, DstY: 0, DstWidth: 0, DstHeight: 8,
	}))
}

func TestSurfaceRejectsUndecodableTile(t *testing.T) {
	surface, err := ImageSurfaceFactory{}.NewSurface(8, 8)
	require.NoError(t, err)

	err = surface.DrawTile([]byte("not an image"), PlacementRect{
		DstX: 0, DstY: 0, DstWidth: 8, DstHeight: 8,
	})
	require.Error(t, err)
}

func TestSurfaceEncodeFormats(t *testing.T) {
	surface, err := ImageSurfaceFactory{}.NewSurface(4, 4)
	require.NoError(t, err)

	data, err := surface.Encode(JPG)
	require.NoError(t, err)
	format, err := detectTileFormat(data)
	require.NoError(t, err)
	require.Equal(t, JPG, format)

	for _, f := range []TileFormat{UNKNOWN, PBF, WEBP} {
		_, err := surface.Encode(f)
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	}
}

func TestNewSurfaceValidatesSize(t *testing.T) {
	_, err := ImageSurfaceFactory{}.NewSurface(0, 16)
	require.Error(t, err)
	_, err = ImageSurfaceFactory{}.NewSurface(16, -1)
	require.Error(t, err)
}

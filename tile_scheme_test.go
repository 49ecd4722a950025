package tileraster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTilesPerSide(t *testing.T) {
	require.Equal(t, int64(1), TilesPerSide(0))
	require.Equal(t, int64(2), TilesPerSide(1))
	require.Equal(t, int64(1024), TilesPerSide(10))
}

func TestTileSize(t *testing.T) {
	require.Equal(t, 2*WebMercatorHalfWorldWidth, TileSize(1, 2*WebMercatorHalfWorldWidth))
	require.Equal(t, 90.0, TileSize(4, 360))
}

func TestZoomFromTileSize(t *testing.T) {
	world := 2 * WebMercatorHalfWorldWidth
	for zoom := 0; zoom <= 12; zoom++ {
		size := TileSize(TilesPerSide(zoom), world)
		require.InDelta(t, float64(zoom), ZoomFromTileSize(size, world), 1e-9)
	}
	require.Equal(t, 0, ZoomFromTilesPerSide(1))
	require.Equal(t, 4, ZoomFromTilesPerSide(16))
}

func TestBoundingBoxFromXYZ(t *testing.T) {
	world := BoundingBoxFromXYZ(0, 0, 0, WebMercatorHalfWorldWidth)
	require.Equal(t, WorldWebMercator(), world)

	ne := BoundingBoxFromXYZ(1, 0, 1, WebMercatorHalfWorldWidth)
	require.Equal(t, NewBoundingBox(0, 0, WebMercatorHalfWorldWidth, WebMercatorHalfWorldWidth), ne)
}

func TestXYZRoundTrip(t *testing.T) {
	for _, halfWorld := range []float64{WebMercatorHalfWorldWidth, WGS84HalfWorldWidth} {
		for _, zoom := range []int{0, 1, 4, 9, 12} {
			n := TilesPerSide(zoom)
			for _, x := range []int64{0, 1, n / 2, n - 1} {
				for _, y := range []int64{0, 1, n / 2, n - 1} {
					box := BoundingBoxFromXYZ(x, y, zoom, halfWorld)
					grid := TileGridFromBoundingBox(box, zoom, halfWorld)
					require.Equal(t, NewTileGrid(x, y, x, y), grid, "zoom %d tile %d,%d", zoom, x, y)
				}
			}
		}
	}
}

func TestTileGridFromBoundingBoxClamps(t *testing.T) {
	oversized := NewBoundingBox(
		-2*WebMercatorHalfWorldWidth, -2*WebMercatorHalfWorldWidth,
		2*WebMercatorHalfWorldWidth, 2*WebMercatorHalfWorldWidth,
	)
	grid := TileGridFromBoundingBox(oversized, 2, WebMercatorHalfWorldWidth)
	require.Equal(t, NewTileGrid(0, 0, 3, 3), grid)
}

func TestTileGridFromBoundingBoxPurity(t *testing.T) {
	box := NewBoundingBox(-12345.6, -7890.1, 23456.7, 8901.2)
	first := TileGridFromBoundingBox(box, 7, WebMercatorHalfWorldWidth)
	second := TileGridFromBoundingBox(box, 7, WebMercatorHalfWorldWidth)
	require.Equal(t, first, second)
}

func TestWGS84TileCounts(t *testing.T) {
	for zoom := 0; zoom <= 20; zoom++ {
		require.Equal(t, 2*TilesPerWGS84LatSide(zoom), TilesPerWGS84LonSide(zoom))
	}
	require.Equal(t, int64(2), TilesPerWGS84LonSide(0))
	require.Equal(t, int64(1), TilesPerWGS84LatSide(0))
}

func TestWGS84BoundingBoxFromXYZ(t *testing.T) {
	west := WGS84BoundingBoxFromXYZ(0, 0, 0)
	require.Equal(t, NewBoundingBox(-180, -90, 0, 90), west)

	east := WGS84BoundingBoxFromXYZ(1, 0, 0)
	require.Equal(t, NewBoundingBox(0, -90, 180, 90), east)

	tile := WGS84BoundingBoxFromXYZ(1, 0, 1)
	require.Equal(t, NewBoundingBox(-90, 0, 0, 90), tile)
}

func TestWGS84TileGridFromBoundingBox(t *testing.T) {
	for _, zoom := range []int{0, 1, 3, 8} {
		nLon := TilesPerWGS84LonSide(zoom)
		nLat := TilesPerWGS84LatSide(zoom)
		for _, x := range []int64{0, nLon / 2, nLon - 1} {
			for _, y := range []int64{0, nLat - 1} {
				box := WGS84BoundingBoxFromXYZ(x, y, zoom)
				grid := WGS84TileGridFromBoundingBox(box, zoom)
				require.Equal(t, NewTileGrid(x, y, x, y), grid, "zoom %d tile %d,%d", zoom, x, y)
			}
		}
	}
}

func TestWGS84TileGridBoundaryTieBreak(t *testing.T) {
	// The east edge lands exactly on the boundary between columns 1 and 2,
	// so column 2 must stay out of the grid.
	box := NewBoundingBox(-180, 0, -90, 90)
	grid := WGS84TileGridFromBoundingBox(box, 1)
	require.Equal(t, NewTileGrid(0, 0, 0, 0), grid)

	wide := NewBoundingBox(-180, -90, 180, 90)
	require.Equal(t, NewTileGrid(0, 0, 3, 1), WGS84TileGridFromBoundingBox(wide, 1))
}

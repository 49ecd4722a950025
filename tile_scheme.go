package tileraster

import "math"

// WebMercatorHalfWorldWidth is the distance in meters from the origin to
// the edge of the square web mercator world, pi times the WGS84 semi major
// axis.
const WebMercatorHalfWorldWidth = math.Pi * 6378137

const (
	WGS84HalfWorldWidth  = 180.0
	WGS84HalfWorldHeight = 90.0
)

// TilesPerSide returns the tile count along one side of the square world at
// the given zoom level.
func TilesPerSide(zoom int) int64 {
	return int64(1) << uint(zoom)
}

// TileSize returns the world units covered by one tile side when
// tilesPerSide tiles span totalLength units.
func TileSize(tilesPerSide int64, totalLength float64) float64 {
	return totalLength / float64(tilesPerSide)
}

// ZoomFromTileSize returns the fractional zoom level at which one tile of a
// totalLength wide world spans tileSize units.
func ZoomFromTileSize(tileSize, totalLength float64) float64 {
	return math.Log2(totalLength / tileSize)
}

// ZoomFromTilesPerSide returns the zoom level with tilesPerSide tiles along
// one side of the square world.
func ZoomFromTilesPerSide(tilesPerSide int64) int {
	return int(math.Round(math.Log2(float64(tilesPerSide))))
}

// BoundingBoxFromXYZ returns the extent of tile x, y at zoom in a square
// scheme whose world reaches halfWorldWidth units from the origin on both
// axes. Row y zero is the top row. Corners are clamped to the world.
func BoundingBoxFromXYZ(x, y int64, zoom int, halfWorldWidth float64) BoundingBox {
	tileSize := TileSize(TilesPerSide(zoom), 2*halfWorldWidth)
	minX := -halfWorldWidth + float64(x)*tileSize
	maxY := halfWorldWidth - float64(y)*tileSize
	return BoundingBox{
		MinX: clampWorld(minX, halfWorldWidth),
		MinY: clampWorld(maxY-tileSize, halfWorldWidth),
		MaxX: clampWorld(minX+tileSize, halfWorldWidth),
		MaxY: clampWorld(maxY, halfWorldWidth),
	}
}

func clampWorld(v, halfWorld float64) float64 {
	return math.Max(-halfWorld, math.Min(halfWorld, v))
}

// TileGridFromBoundingBox returns the tiles at zoom touched by box in a
// square scheme world of halfWorldWidth, clamped to the world. A box edge
// landing exactly on a tile boundary does not pull in the tile beyond it.
func TileGridFromBoundingBox(box BoundingBox, zoom int, halfWorldWidth float64) TileGrid {
	tilesPerSide := TilesPerSide(zoom)
	tileSize := TileSize(tilesPerSide, 2*halfWorldWidth)

	minX := int64(math.Floor(snapIndex((box.MinX + halfWorldWidth) / tileSize)))
	maxX := int64(math.Ceil(snapIndex((box.MaxX+halfWorldWidth)/tileSize))) - 1
	minY := int64(math.Floor(snapIndex((halfWorldWidth - box.MaxY) / tileSize)))
	maxY := int64(math.Ceil(snapIndex((halfWorldWidth-box.MinY)/tileSize))) - 1

	return TileGrid{
		MinX: clampIndex(minX, tilesPerSide),
		MinY: clampIndex(minY, tilesPerSide),
		MaxX: clampIndex(maxX, tilesPerSide),
		MaxY: clampIndex(maxY, tilesPerSide),
	}
}

// TilesPerWGS84LatSide returns the tile rows of the WGS84 pyramid at zoom.
func TilesPerWGS84LatSide(zoom int) int64 {
	return TilesPerSide(zoom)
}

// TilesPerWGS84LonSide returns the tile columns of the WGS84 pyramid at
// zoom, twice the row count since the pyramid starts two tiles wide.
func TilesPerWGS84LonSide(zoom int) int64 {
	return 2 * TilesPerSide(zoom)
}

// WGS84BoundingBoxFromXYZ returns the extent of WGS84 pyramid tile x, y at
// zoom. Row y zero touches the north pole. Corners are clamped to the
// longitude and latitude ranges.
func WGS84BoundingBoxFromXYZ(x, y int64, zoom int) BoundingBox {
	tileSizeLon := TileSize(TilesPerWGS84LonSide(zoom), 2*WGS84HalfWorldWidth)
	tileSizeLat := TileSize(TilesPerWGS84LatSide(zoom), 2*WGS84HalfWorldHeight)
	minLon := -WGS84HalfWorldWidth + float64(x)*tileSizeLon
	maxLat := WGS84HalfWorldHeight - float64(y)*tileSizeLat
	return BoundingBox{
		MinX: clampWorld(minLon, WGS84HalfWorldWidth),
		MinY: clampWorld(maxLat-tileSizeLat, WGS84HalfWorldHeight),
		MaxX: clampWorld(minLon+tileSizeLon, WGS84HalfWorldWidth),
		MaxY: clampWorld(maxLat, WGS84HalfWorldHeight),
	}
}

// WGS84TileGridFromBoundingBox returns the WGS84 pyramid tiles touched by
// box at zoom, clamped to the pyramid bounds.
func WGS84TileGridFromBoundingBox(box BoundingBox, zoom int) TileGrid {
	tilesPerLon := TilesPerWGS84LonSide(zoom)
	tilesPerLat := TilesPerWGS84LatSide(zoom)
	tileSizeLon := TileSize(tilesPerLon, 2*WGS84HalfWorldWidth)
	tileSizeLat := TileSize(tilesPerLat, 2*WGS84HalfWorldHeight)

	minX := int64(math.Floor(snapIndex((box.MinX + WGS84HalfWorldWidth) / tileSizeLon)))
	maxX := boundaryIndex((box.MaxX + WGS84HalfWorldWidth) / tileSizeLon)
	minY := int64(math.Floor(snapIndex((WGS84HalfWorldHeight - box.MaxY) / tileSizeLat)))
	maxY := boundaryIndex((WGS84HalfWorldHeight - box.MinY) / tileSizeLat)

	return TileGrid{
		MinX: clampIndex(minX, tilesPerLon),
		MinY: clampIndex(minY, tilesPerLat),
		MaxX: clampIndex(maxX, tilesPerLon),
		MaxY: clampIndex(maxY, tilesPerLat),
	}
}

// tileIndexPrecision is the relative drift absorbed when a fractional tile
// index computed from world coordinates lands next to a tile boundary.
const tileIndexPrecision = 1e-11

// snapIndex moves a fractional tile index onto the neighboring integer when
// it sits within tileIndexPrecision of it, so extents produced by tile
// arithmetic resolve to the tiles that produced them.
func snapIndex(i float64) float64 {
	r := math.Round(i)
	if math.Abs(i-r) <= tileIndexPrecision*math.Max(1, math.Abs(r)) {
		return r
	}
	return i
}

// boundaryIndex floors a fractional upper tile index, stepping back one
// when it lands exactly on a tile boundary.
func boundaryIndex(i float64) int64 {
	i = snapIndex(i)
	f := math.Floor(i)
	if i == f {
		f--
	}
	return int64(f)
}

func clampIndex(i, tilesPerSide int64) int64 {
	if i < 0 {
		return 0
	}
	if i > tilesPerSide-1 {
		return tilesPerSide - 1
	}
	return i
}

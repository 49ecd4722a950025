package tileraster

// TileGrid is an inclusive rectangle of tile indices within a single zoom
// level. Indices are zero based with row zero at the top of the matrix, so
// MinY is the northernmost row.
type TileGrid struct {
	MinX int64
	MinY int64
	MaxX int64
	MaxY int64
}

func NewTileGrid(minX, minY, maxX, maxY int64) TileGrid {
	return TileGrid{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Width returns the number of columns spanned by the grid.
func (g TileGrid) Width() int64 { return g.MaxX - g.MinX + 1 }

// Height returns the number of rows spanned by the grid.
func (g TileGrid) Height() int64 { return g.MaxY - g.MinY + 1 }

// Count returns the number of tiles addressed by the grid.
func (g TileGrid) Count() int64 { return g.Width() * g.Height() }

// Contains reports whether the tile at column, row lies inside the grid.
func (g TileGrid) Contains(column, row int64) bool {
	return column >= g.MinX && column <= g.MaxX && row >= g.MinY && row <= g.MaxY
}

// RemapTileGrid converts a grid between zoom levels of a power of two
// pyramid. Zooming in multiplies the covered index range; zooming out
// shrinks it to every tile the original range touches, flooring the lower
// bound and ceiling the upper one.
func RemapTileGrid(grid TileGrid, fromZoom, toZoom int) TileGrid {
	if toZoom > fromZoom {
		f := int64(1) << uint(toZoom-fromZoom)
		return TileGrid{
			MinX: grid.MinX * f,
			MinY: grid.MinY * f,
			MaxX: (grid.MaxX+1)*f - 1,
			MaxY: (grid.MaxY+1)*f - 1,
		}
	}
	if toZoom < fromZoom {
		f := int64(1) << uint(fromZoom-toZoom)
		return TileGrid{
			MinX: grid.MinX / f,
			MinY: grid.MinY / f,
			MaxX: (grid.MaxX+f)/f - 1,
			MaxY: (grid.MaxY+f)/f - 1,
		}
	}
	return grid
}

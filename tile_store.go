package tileraster

// TileRecord is one stored tile row: its cell address within the zoom
// level's matrix and the encoded image bytes.
type TileRecord struct {
	Column int64
	Row    int64
	Data   []byte
}

// TileCursor iterates once over the tile rows matched by a grid query, in
// storage order. Err reports the first failure seen while advancing, and
// Close must be called when iteration ends.
type TileCursor interface {
	Next() bool
	Tile() TileRecord
	Err() error
	Close() error
}

// TileStore supplies one tile pyramid to a TileRetriever. TotalBoundingBox
// and SrsID describe the extent and reference system shared by every zoom
// level, TileMatrices lists the stored levels ordered by zoom, and
// QueryTilesInGrid fetches the rows of one level whose cells fall inside
// the given grid.
type TileStore interface {
	TotalBoundingBox() BoundingBox
	SrsID() int
	TileMatrices() ([]TileMatrix, error)
	TileMatrixMetadata(zoom int) (TileMatrix, bool, error)
	QueryTilesInGrid(grid TileGrid, zoom int) (TileCursor, error)
}

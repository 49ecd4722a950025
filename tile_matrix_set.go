package tileraster

import "github.com/flywave/go-geo"

// TileMatrixSet records the total extent shared by every zoom level of a
// tile table, one row of gpkg_tile_matrix_set per table.
type TileMatrixSet struct {
	Name                     string   `sql:"type:text" gorm:"column:table_name;not null;primary_key" validate:"required"`
	SpatialReferenceSystemId *int     `gorm:"column:srs_id;not null" validate:"required"`
	MinX                     *float64 `gorm:"column:min_x;not null" validate:"required"`
	MinY                     *float64 `gorm:"column:min_y;not null" validate:"required"`
	MaxX                     *float64 `gorm:"column:max_x;not null" validate:"required"`
	MaxY                     *float64 `gorm:"column:max_y;not null" validate:"required"`
}

func (TileMatrixSet) TableName() string {
	return "gpkg_tile_matrix_set"
}

func (tms TileMatrixSet) GetSpatialReferenceSystemId() int {
	if tms.SpatialReferenceSystemId == nil {
		return 0
	}
	return *tms.SpatialReferenceSystemId
}

// BoundingBox returns the total extent of the pyramid in its native
// reference system.
func (tms TileMatrixSet) BoundingBox() BoundingBox {
	if tms.MinX == nil || tms.MinY == nil || tms.MaxX == nil || tms.MaxY == nil {
		return BoundingBox{}
	}
	return NewBoundingBox(*tms.MinX, *tms.MinY, *tms.MaxX, *tms.MaxY)
}

func NewTileMatrixSet(tableName string, grid *geo.TileGrid) *TileMatrixSet {
	bbox := grid.BBox
	srsId := geo.GetEpsgNum(grid.Srs.GetSrsCode())
	return &TileMatrixSet{Name: tableName, MinX: &bbox.Min[0], MinY: &bbox.Min[1], MaxX: &bbox.Max[0], MaxY: &bbox.Max[1], SpatialReferenceSystemId: &srsId}
}

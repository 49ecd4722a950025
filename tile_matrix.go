package tileraster

import (
	"github.com/flywave/go-geo"
)

// TileMatrix is one zoom level of a stored tile pyramid, one row of
// gpkg_tile_matrix per level.
type TileMatrix struct {
	Name         string  `sql:"type:text" gorm:"column:table_name;not null" validate:"required"`
	ZoomLevel    int     `gorm:"column:zoom_level;not null" validate:"gte=0"`
	MatrixWidth  int64   `gorm:"column:matrix_width;not null" validate:"gte=1"`
	MatrixHeight int64   `gorm:"column:matrix_height;not null" validate:"gte=1"`
	TileWidth    int     `gorm:"column:tile_width;not null" validate:"gte=1"`
	TileHeight   int     `gorm:"column:tile_height;not null" validate:"gte=1"`
	PixelXSize   float64 `gorm:"column:pixel_x_size;not null" validate:"gt=0"`
	PixelYSize   float64 `gorm:"column:pixel_y_size;not null" validate:"gt=0"`
}

func (TileMatrix) TableName() string {
	return "gpkg_tile_matrix"
}

func NewTileMatrixs(tableName string, grid *geo.TileGrid) []TileMatrix {
	levels := int(grid.Levels)
	tms := []TileMatrix{}
	for i := 0; i < levels; i++ {
		res := grid.Resolutions[i]
		grids := grid.GridSizes[i]

		tms = append(tms, TileMatrix{
			Name:         tableName,
			ZoomLevel:    i,
			MatrixWidth:  int64(grids[0]),
			MatrixHeight: int64(grids[1]),
			TileWidth:    int(grid.TileSize[0]),
			TileHeight:   int(grid.TileSize[1]),
			PixelXSize:   res,
			PixelYSize:   res,
		})
	}
	return tms
}

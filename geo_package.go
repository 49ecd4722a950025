package tileraster

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	vec2d "github.com/flywave/go3d/float64/vec2"

	"github.com/flywave/go-geo"
	"github.com/flywave/go-geom/general"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/pkg/errors"
)

const (
	ApplicationID = 0x47504B47 // "GPKG"
	UserVersion   = 0x000027D9 // 10201
)

// matrixCacheSize bounds the per-package cache of gpkg_tile_matrix rows so
// repeated retrievals do not requery the metadata tables.
const matrixCacheSize = 64

var (
	initialSQL = fmt.Sprintf(
		`
		PRAGMA application_id = %d;
		PRAGMA user_version = %d ;
		PRAGMA foreign_keys = ON ;
		`,
		ApplicationID,
		UserVersion,
	)
)

type GeoPackage struct {
	Uri string
	DB  *gorm.DB

	matrices *lru.Cache[string, []TileMatrix]
}

func New(uri string) *GeoPackage {
	return &GeoPackage{
		Uri: uri,
	}
}

func Create(uri string) (*GeoPackage, error) {
	gpkg := &GeoPackage{
		Uri: uri,
	}
	if err := gpkg.Init(); err != nil {
		return nil, err
	}
	if err := gpkg.AutoMigrate(); err != nil {
		return nil, err
	}
	return gpkg, nil
}

func (g *GeoPackage) Exists() bool {
	if _, err := os.Stat(g.Uri); os.IsNotExist(err) {
		return false
	}
	return true
}

func (g *GeoPackage) Size() (int64, error) {
	fi, err := os.Stat(g.Uri)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (g *GeoPackage) Init() error {
	db, err := gorm.Open("sqlite3", g.Uri)
	if err != nil {
		return err
	}
	err = db.Exec(initialSQL).Error
	if err != nil {
		return err
	}
	cache, err := lru.New[string, []TileMatrix](matrixCacheSize)
	if err != nil {
		return err
	}
	g.DB = db
	g.matrices = cache
	return nil
}

func (g *GeoPackage) AutoMigrate() error {
	err := g.DB.AutoMigrate(Content{}).Error
	if err != nil {
		return errors.Wrap(err, "Error migrating Content")
	}
	err = g.DB.AutoMigrate(TileMatrix{}).Error
	if err != nil {
		return errors.Wrap(err, "Error migrating TileMatrix")
	}
	err = g.DB.AutoMigrate(TileMatrixSet{}).Error
	if err != nil {
		return errors.Wrap(err, "Error migrating TileMatrixSet")
	}
	err = g.DB.AutoMigrate(SpatialReferenceSystem{}).Error
	if err != nil {
		return errors.Wrap(err, "Error migrating SpatialReferenceSystem")
	}
	return nil
}

func (g *GeoPackage) GetSpatialReferenceSystem(srsID int) (SpatialReferenceSystem, error) {
	srs := SpatialReferenceSystem{}
	err := g.DB.First(&srs, SpatialReferenceSystem{SpatialReferenceSystemId: &srsID}).Error
	return srs, err
}

func (g *GeoPackage) QueryInt(stmt string, args ...interface{}) (int, error) {
	result := 0

	rows, err := g.DB.DB().Query(stmt, args...)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&result); err != nil {
			return result, err
		}
	}

	return result, rows.Err()
}

func (g *GeoPackage) GetTileWidth(table string) (int, error) {
	stmt := "SELECT tile_width FROM gpkg_tile_matrix WHERE table_name = ? ORDER BY zoom_level LIMIT 1;"
	return g.QueryInt(stmt, table)
}

func (g *GeoPackage) GetTileHeight(table string) (int, error) {
	stmt := "SELECT tile_height FROM gpkg_tile_matrix WHERE table_name = ? ORDER BY zoom_level LIMIT 1;"
	return g.QueryInt(stmt, table)
}

func (g *GeoPackage) GetExtent() (*general.Extent, error) {
	extent := general.Extent{}

	rows, err := g.DB.DB().Query("SELECT min(min_x), max(max_x), min(min_y), max(max_y) FROM gpkg_contents;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var minx, miny, maxx, maxy *float64
		if err := rows.Scan(&minx, &miny, &maxx, &maxy); err != nil {
			return nil, err
		}
		if minx != nil && miny != nil && maxx != nil && maxy != nil {
			extent = general.Extent{*minx, *miny, *maxx, *maxy}
			return &extent, nil
		}
	}

	return nil, errors.New("bounds not set!")
}

func (g *GeoPackage) GetCoverage() (geo.Coverage, error) {
	ext, err := g.GetExtent()
	if err != nil {
		return nil, err
	}

	rows, err := g.DB.DB().Query("SELECT srs_id FROM gpkg_contents LIMIT 1;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var srscode int
	if rows.Next() {
		if err := rows.Scan(&srscode); err != nil {
			return nil, err
		}
	}

	return geo.NewBBoxCoverage(vec2d.Rect{Min: vec2d.T{ext[0], ext[1]}, Max: vec2d.T{ext[2], ext[3]}}, geo.NewProj(srscode), false), nil
}

// GetTileContents lists the gpkg_contents rows of tile layers.
func (g *GeoPackage) GetTileContents() ([]Content, error) {
	contents := make([]Content, 0)
	err := g.DB.Where(Content{DataType: DataTypeTiles}).Find(&contents).Error
	return contents, err
}

func (g *GeoPackage) GetTile(table string, z int, x int, y int) ([]byte, error) {
	b := make([]byte, 0)

	stmt := fmt.Sprintf("SELECT tile_data FROM [%s] WHERE zoom_level = ? AND tile_column = ? AND tile_row = ? LIMIT 1;", table)
	rows, err := g.DB.DB().Query(stmt, z, x, y)
	if err != nil {
		return b, err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&b); err != nil {
			return b, err
		}
	}

	return b, rows.Err()
}

func (g *GeoPackage) StoreTile(table string, z int, x int, y int, data []byte) error {
	stmt := fmt.Sprintf("INSERT OR REPLACE INTO [%s] (zoom_level, tile_column, tile_row, tile_data) VALUES (?,?,?,?)", table)

	_, err := g.DB.DB().Exec(stmt, z, x, y, data)
	if err != nil {
		return err
	}

	return nil
}

func (g *GeoPackage) GetMaxZoom(table string) (int, error) {
	stmt := "SELECT max(zoom_level) FROM gpkg_tile_matrix WHERE table_name = ?;"
	return g.QueryInt(stmt, table)
}

func (g *GeoPackage) GetZoomLevelsAndResolutions(table string) ([]int, []float64, error) {
	stmt := "SELECT zoom_level, pixel_x_size FROM gpkg_tile_matrix WHERE table_name = ? ORDER BY zoom_level;"
	levels := make([]int, 0)
	resolutions := make([]float64, 0)

	rows, err := g.DB.DB().Query(stmt, table)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		level := 0
		res := float64(0)
		if err := rows.Scan(&level, &res); err != nil {
			return nil, nil, err
		}
		levels = append(levels, level)
		resolutions = append(resolutions, res)
	}

	return levels, resolutions, rows.Err()
}

func (g *GeoPackage) GetTileMatrixSets() ([]TileMatrixSet, error) {
	tileMatrixSets := make([]TileMatrixSet, 0)
	err := g.DB.Find(&tileMatrixSets).Error
	return tileMatrixSets, err
}

func (g *GeoPackage) GetTileMatrixSet(table string) (TileMatrixSet, error) {
	tms := TileMatrixSet{}
	err := g.DB.First(&tms, TileMatrixSet{Name: table}).Error
	return tms, err
}

// GetTileMatrices returns the stored zoom levels of a tile table ordered by
// zoom, caching the rows per table.
func (g *GeoPackage) GetTileMatrices(table string) ([]TileMatrix, error) {
	if g.matrices != nil {
		if ms, ok := g.matrices.Get(table); ok {
			return ms, nil
		}
	}

	ms := make([]TileMatrix, 0)
	err := g.DB.Where(TileMatrix{Name: table}).Order("zoom_level").Find(&ms).Error
	if err != nil {
		return nil, err
	}

	if g.matrices != nil {
		g.matrices.Add(table, ms)
	}
	return ms, nil
}

func (g *GeoPackage) Close() error {
	return g.DB.Close()
}

func (g *GeoPackage) verifyTable(table string) bool {
	name := ""

	rows, err := g.DB.DB().Query("SELECT name FROM sqlite_master WHERE type='table' AND name = ?;", table)
	if err != nil {
		return false
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&name); err != nil {
			return false
		}
	}

	return name != ""
}

func (g *GeoPackage) GetTileFormat(table string) (TileFormat, error) {
	b := make([]byte, 0)

	stmt := fmt.Sprintf("SELECT tile_data FROM [%s] LIMIT 1;", table)
	rows, err := g.DB.DB().Query(stmt)
	if err != nil {
		return UNKNOWN, err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&b); err != nil {
			return UNKNOWN, err
		}
	}

	return detectTileFormat(b)
}

func (g *GeoPackage) AddTilesTable(table string, grid *geo.TileGrid, cov geo.Coverage) error {
	const (
		validateSRSSQL = `
		SELECT Count(*)
		FROM gpkg_spatial_ref_sys
		WHERE
			srs_id=?
		`
		updateContentsTableSQL = `
		INSERT INTO gpkg_contents(
			table_name,
			data_type,
			identifier,
			description,
			srs_id,
			last_change
		)
		VALUES (?,?,?,?,?,?)
    	ON CONFLICT(table_name) DO NOTHING;
		`
		createTilesTableSql = `
		CREATE TABLE IF NOT EXISTS "%v"
		(id          INTEGER PRIMARY KEY AUTOINCREMENT,
		 zoom_level  INTEGER NOT NULL,
		 tile_column INTEGER NOT NULL,
		 tile_row    INTEGER NOT NULL,
		 tile_data   BLOB    NOT NULL,
		 UNIQUE (zoom_level, tile_column, tile_row))
		 `
	)
	var count int

	srsID := geo.GetEpsgNum(grid.Srs.GetSrsCode())

	err := g.DB.DB().QueryRow(validateSRSSQL, srsID).Scan(&count)
	if err != nil {
		return err
	}
	if count == 0 {
		srsdef, ok := DefaultSpatialReferenceSystem[srsID]
		if !ok {
			return fmt.Errorf("unknown srs: %v", srsID)
		}
		if err = g.UpdateSRS(srsdef); err != nil {
			return err
		}
	}
	_, err = g.DB.DB().Exec(updateContentsTableSQL, table, DataTypeTiles, table, table, srsID, time.Now())
	if err != nil {
		return err
	}
	_, err = g.DB.DB().Exec(fmt.Sprintf(createTilesTableSql, table))
	if err != nil {
		return err
	}

	if cov != nil {
		cov = cov.TransformTo(grid.Srs)
		bbox := cov.GetBBox()
		err := g.UpdateTileExtent(table, &general.Extent{bbox.Min[0], bbox.Min[1], bbox.Max[0], bbox.Max[1]})
		if err != nil {
			return err
		}
	}

	return g.saveTileMatrixSet(NewTileMatrixSet(table, grid), NewTileMatrixs(table, grid))
}

func (g *GeoPackage) UpdateSRS(srss ...SpatialReferenceSystem) error {
	const (
		UpdateSQL = `
	INSERT INTO gpkg_spatial_ref_sys(
		srs_name,
		srs_id,
		organization,
		organization_coordsys_id,
		definition,
		description
	)
	VALUES %v
    ON CONFLICT(srs_id) DO NOTHING;
	`
		placeHolders = `(?,?,?,?,?,?) `
	)
	if len(srss) == 0 {
		return nil
	}

	valuePlaceHolder := strings.Join(
		strings.SplitN(
			strings.Repeat(placeHolders, len(srss)),
			" ",
			len(srss),
		),
		",",
	)
	updateSQL := fmt.Sprintf(UpdateSQL, valuePlaceHolder)
	values := make([]interface{}, 0, len(srss)*6)

	for _, srs := range srss {
		values = append(
			values,
			srs.Name,
			srs.SpatialReferenceSystemId,
			srs.Organization,
			srs.OrganizationCoordinateSystemId,
			srs.Definition,
			srs.Description,
		)
	}
	_, err := g.DB.DB().Exec(updateSQL, values...)
	return err
}

// UpdateTileExtent widens the gpkg_contents extent of a tile table to
// cover the given extent.
func (g *GeoPackage) UpdateTileExtent(tablename string, extent *general.Extent) error {
	if extent == nil {
		return nil
	}

	var (
		minx,
		miny,
		maxx,
		maxy *float64

		ext *general.Extent
	)
	const (
		selectSQL = `
		SELECT
			min_x,
			min_y,
			max_x,
			max_y
		FROM
			gpkg_contents
		WHERE
			table_name = ?
		`
		updateSQL = `
		UPDATE gpkg_contents
		SET
			min_x = ?,
			min_y = ?,
			max_x = ?,
			max_y = ?
		WHERE
			table_name = ?
		`
	)
	err := g.DB.DB().QueryRow(selectSQL, tablename).Scan(&minx, &miny, &maxx, &maxy)
	if err != nil {
		return err
	}
	if minx == nil || miny == nil || maxx == nil || maxy == nil {
		ext = extent
	} else {
		ext = general.NewExtent([]float64{*minx, *miny}, []float64{*maxx, *maxy})
		ext.Add(extent)
	}
	_, err = g.DB.DB().Exec(updateSQL, ext.MinX(), ext.MinY(), ext.MaxX(), ext.MaxY(), tablename)
	return err
}

func (g *GeoPackage) saveTileMatrixSet(tms *TileMatrixSet, ts []TileMatrix) error {
	err := g.DB.Save(tms).Error

	if err != nil {
		return err
	}

	for i := range ts {
		err := g.DB.Save(ts[i]).Error

		if err != nil {
			return err
		}

	}

	if g.matrices != nil {
		g.matrices.Remove(tms.Name)
	}

	return nil
}

// OpenTileStore binds a tile table of this package to the TileStore
// contract consumed by TileRetriever.
func (g *GeoPackage) OpenTileStore(table string) (*GeoPackageTileStore, error) {
	if !g.verifyTable(table) {
		return nil, errors.Errorf("no such tile table: %s", table)
	}
	tms, err := g.GetTileMatrixSet(table)
	if err != nil {
		return nil, errors.Wrapf(err, "loading tile matrix set of %s", table)
	}
	if err := validate.Struct(&tms); err != nil {
		return nil, errors.Wrapf(err, "invalid tile matrix set of %s", table)
	}
	totalBox := tms.BoundingBox()
	if err := totalBox.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid extent of %s", table)
	}
	return &GeoPackageTileStore{
		gpkg:     g,
		table:    table,
		srsID:    tms.GetSpatialReferenceSystemId(),
		totalBox: totalBox,
	}, nil
}

// GeoPackageTileStore serves one tile table as a TileStore.
type GeoPackageTileStore struct {
	gpkg     *GeoPackage
	table    string
	srsID    int
	totalBox BoundingBox
}

func (s *GeoPackageTileStore) Table() string {
	return s.table
}

func (s *GeoPackageTileStore) TotalBoundingBox() BoundingBox {
	return s.totalBox
}

func (s *GeoPackageTileStore) SrsID() int {
	return s.srsID
}

func (s *GeoPackageTileStore) TileMatrices() ([]TileMatrix, error) {
	ms, err := s.gpkg.GetTileMatrices(s.table)
	if err != nil {
		return nil, err
	}
	for i := range ms {
		if err := validate.Struct(&ms[i]); err != nil {
			return nil, errors.Wrapf(err, "invalid tile matrix at zoom %d of %s", ms[i].ZoomLevel, s.table)
		}
	}
	return ms, nil
}

func (s *GeoPackageTileStore) TileMatrixMetadata(zoom int) (TileMatrix, bool, error) {
	ms, err := s.TileMatrices()
	if err != nil {
		return TileMatrix{}, false, err
	}
	for _, m := range ms {
		if m.ZoomLevel == zoom {
			return m, true, nil
		}
	}
	return TileMatrix{}, false, nil
}

func (s *GeoPackageTileStore) QueryTilesInGrid(grid TileGrid, zoom int) (TileCursor, error) {
	stmt := fmt.Sprintf(
		"SELECT tile_column, tile_row, tile_data FROM [%s] WHERE zoom_level = ? AND tile_column BETWEEN ? AND ? AND tile_row BETWEEN ? AND ? ORDER BY tile_row, tile_column;",
		s.table,
	)
	rows, err := s.gpkg.DB.DB().Query(stmt, zoom, grid.MinX, grid.MaxX, grid.MinY, grid.MaxY)
	if err != nil {
		return nil, errors.Wrapf(err, "querying tiles of %s at zoom %d", s.table, zoom)
	}
	return &tileRows{rows: rows}, nil
}

type tileRows struct {
	rows *sql.Rows
	cur  TileRecord
	err  error
}

func (t *tileRows) Next() bool {
	if t.err != nil {
		return false
	}
	if !t.rows.Next() {
		t.err = t.rows.Err()
		return false
	}
	var rec TileRecord
	if err := t.rows.Scan(&rec.Column, &rec.Row, &rec.Data); err != nil {
		t.err = err
		return false
	}
	t.cur = rec
	return true
}

func (t *tileRows) Tile() TileRecord {
	return t.cur
}

func (t *tileRows) Err() error {
	return t.err
}

func (t *tileRows) Close() error {
	return t.rows.Close()
}

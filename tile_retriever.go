package tileraster

import (
	"math"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// zoomTolerance is the relative band within which a stored tile width may
// undershoot the requested width and the zoom level still be chosen.
const zoomTolerance = 0.001

// boxEqualityTolerance bounds the relative drift allowed between a tile
// extent and a request extent before passthrough is ruled out.
const boxEqualityTolerance = 1e-9

// ImageRequest describes one output raster to render from a tile store.
// Zero width and height default to 256. A zero SrsID means the request box
// is already in the store's reference system, and a zero Format means PNG.
// Passthrough asks for the stored tile bytes untouched when a single tile
// covers the request exactly.
type ImageRequest struct {
	BoundingBox BoundingBox
	SrsID       int
	Width       int `default:"256" validate:"gte=1,lte=16384"`
	Height      int `default:"256" validate:"gte=1,lte=16384"`
	Format      TileFormat
	Passthrough bool
}

// TileImage is one rendered result. TileCount reports how many stored
// tiles contributed pixels.
type TileImage struct {
	Data      []byte
	Format    TileFormat
	Width     int
	Height    int
	TileCount int
}

// TileRetriever renders image requests from a tile store. The collaborator
// fields may be replaced before the first Retrieve call.
type TileRetriever struct {
	Store       TileStore
	Reprojector Reprojector
	Rasters     RasterFactory
}

func NewTileRetriever(store TileStore) *TileRetriever {
	return &TileRetriever{
		Store:       store,
		Reprojector: GeoReprojector{},
		Rasters:     ImageSurfaceFactory{},
	}
}

// requestScope holds the values derived once per request. Nothing here
// outlives the Retrieve call that created it.
type requestScope struct {
	req         ImageRequest
	reprojected bool
	totalBox    BoundingBox
	tilesBox    BoundingBox
	matrix      TileMatrix
	grid        TileGrid
}

// Retrieve renders one image request. A nil image with a nil error means
// the request matched nothing: no stored zoom level fits, or the request
// box misses the pyramid, or every covered cell is empty.
func (r *TileRetriever) Retrieve(req ImageRequest) (*TileImage, error) {
	if err := defaults.Set(&req); err != nil {
		return nil, errors.Wrap(err, "applying request defaults")
	}
	if req.Format == UNKNOWN {
		req.Format = PNG
	}
	if err := validate.Struct(&req); err != nil {
		return nil, errors.Wrap(err, "invalid image request")
	}
	if err := req.BoundingBox.Validate(); err != nil {
		return nil, err
	}

	scope := &requestScope{req: req, totalBox: r.Store.TotalBoundingBox()}

	scope.tilesBox = req.BoundingBox
	if req.SrsID != 0 && req.SrsID != r.Store.SrsID() {
		box, err := r.Reprojector.TransformBoundingBox(req.BoundingBox, req.SrsID, r.Store.SrsID())
		if err != nil {
			return nil, err
		}
		scope.tilesBox = box
		scope.reprojected = true
	}

	matrices, err := r.Store.TileMatrices()
	if err != nil {
		return nil, errors.Wrap(err, "loading tile matrices")
	}
	zoom, ok := r.selectZoomLevel(scope, matrices)
	if !ok {
		return nil, nil
	}

	matrix, ok, err := r.Store.TileMatrixMetadata(zoom)
	if err != nil {
		return nil, errors.Wrapf(err, "loading tile matrix at zoom %d", zoom)
	}
	if !ok {
		return nil, nil
	}
	scope.matrix = matrix

	grid, ok := MatrixTileGrid(scope.totalBox, matrix.MatrixWidth, matrix.MatrixHeight, scope.tilesBox)
	if !ok {
		return nil, nil
	}
	scope.grid = grid

	return r.composite(scope)
}

// selectZoomLevel scans the stored levels in zoom order and keeps the last
// one whose stored tile width does not undershoot the width one output
// pixel asks for, within the tolerance band.
func (r *TileRetriever) selectZoomLevel(scope *requestScope, matrices []TileMatrix) (int, bool) {
	unitsPerPixel := scope.tilesBox.Width() / float64(scope.req.Width)

	zoom := 0
	found := false
	for _, m := range matrices {
		storedWidth := scope.totalBox.Width() / float64(m.MatrixWidth)
		requestedWidth := unitsPerPixel * float64(m.TileWidth)
		if storedWidth >= requestedWidth || math.Abs(storedWidth-requestedWidth) <= zoomTolerance*storedWidth {
			if !found || m.ZoomLevel > zoom {
				zoom = m.ZoomLevel
				found = true
			}
		}
	}
	return zoom, found
}

func (r *TileRetriever) composite(scope *requestScope) (*TileImage, error) {
	wantRaw := false
	if scope.req.Passthrough && !scope.reprojected && scope.grid.Count() == 1 &&
		scope.matrix.TileWidth == scope.req.Width && scope.matrix.TileHeight == scope.req.Height {
		tileBox := GridBoundingBox(scope.totalBox, scope.matrix.MatrixWidth, scope.matrix.MatrixHeight, scope.grid)
		wantRaw = boxesAlmostEqual(tileBox, scope.tilesBox)
	}

	cursor, err := r.Store.QueryTilesInGrid(scope.grid, scope.matrix.ZoomLevel)
	if err != nil {
		return nil, errors.Wrap(err, "querying tile grid")
	}
	defer cursor.Close()

	var (
		surface RasterSurface
		raw     []byte
		count   int
	)
	for cursor.Next() {
		rec := cursor.Tile()
		if !scope.grid.Contains(rec.Column, rec.Row) {
			continue
		}
		count++
		if wantRaw {
			raw = rec.Data
			continue
		}
		if surface == nil {
			surface, err = r.Rasters.NewSurface(scope.req.Width, scope.req.Height)
			if err != nil {
				return nil, err
			}
		}
		if err := r.drawTile(scope, surface, rec); err != nil {
			return nil, errors.Wrapf(err, "drawing tile %d,%d", rec.Column, rec.Row)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(err, "reading tile rows")
	}

	if raw != nil {
		format, _ := detectTileFormat(raw)
		return &TileImage{
			Data:      raw,
			Format:    format,
			Width:     scope.req.Width,
			Height:    scope.req.Height,
			TileCount: count,
		}, nil
	}
	if surface == nil {
		return nil, nil
	}

	data, err := surface.Encode(scope.req.Format)
	if err != nil {
		return nil, err
	}
	return &TileImage{
		Data:      data,
		Format:    scope.req.Format,
		Width:     scope.req.Width,
		Height:    scope.req.Height,
		TileCount: count,
	}, nil
}

func (r *TileRetriever) drawTile(scope *requestScope, surface RasterSurface, rec TileRecord) error {
	tileBox := TileBoundingBox(scope.totalBox, scope.matrix.MatrixWidth, scope.matrix.MatrixHeight, rec.Column, rec.Row)
	rect := placementFor(scope.tilesBox, scope.req.Width, scope.req.Height, tileBox, scope.matrix.TileWidth, scope.matrix.TileHeight)
	return surface.DrawTile(rec.Data, rect)
}

// placementFor positions a tile extent within the output raster by the
// proportional overlap of the two boxes, rounding each destination edge so
// neighboring tiles meet without seams.
func placementFor(requestBox BoundingBox, outWidth, outHeight int, tileBox BoundingBox, tileWidth, tileHeight int) PlacementRect {
	x0 := math.Round(XPixel(outWidth, requestBox, tileBox.MinX))
	x1 := math.Round(XPixel(outWidth, requestBox, tileBox.MaxX))
	y0 := math.Round(YPixel(outHeight, requestBox, tileBox.MaxY))
	y1 := math.Round(YPixel(outHeight, requestBox, tileBox.MinY))

	return PlacementRect{
		SrcWidth:  tileWidth,
		SrcHeight: tileHeight,
		DstX:      int(x0),
		DstY:      int(y0),
		DstWidth:  int(x1 - x0),
		DstHeight: int(y1 - y0),
	}
}

func boxesAlmostEqual(a, b BoundingBox) bool {
	tol := boxEqualityTolerance * math.Max(math.Max(a.Width(), a.Height()), 1)
	return math.Abs(a.MinX-b.MinX) <= tol &&
		math.Abs(a.MinY-b.MinY) <= tol &&
		math.Abs(a.MaxX-b.MaxX) <= tol &&
		math.Abs(a.MaxY-b.MaxY) <= tol
}

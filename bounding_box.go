package tileraster

import "math"

// BoundingBox is an axis aligned extent in the units of some spatial
// reference system. Min corners are the west and south edges, max corners
// the east and north edges. Methods never mutate the receiver.
type BoundingBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func NewBoundingBox(minX, minY, maxX, maxY float64) BoundingBox {
	return BoundingBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// WorldWebMercator returns the square web mercator world extent.
func WorldWebMercator() BoundingBox {
	return BoundingBox{
		MinX: -WebMercatorHalfWorldWidth,
		MinY: -WebMercatorHalfWorldWidth,
		MaxX: WebMercatorHalfWorldWidth,
		MaxY: WebMercatorHalfWorldWidth,
	}
}

// WorldWGS84 returns the full longitude and latitude extent.
func WorldWGS84() BoundingBox {
	return BoundingBox{
		MinX: -WGS84HalfWorldWidth,
		MinY: -WGS84HalfWorldHeight,
		MaxX: WGS84HalfWorldWidth,
		MaxY: WGS84HalfWorldHeight,
	}
}

func (b BoundingBox) Width() float64  { return b.MaxX - b.MinX }
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Validate checks that the box is usable as a request extent: every corner
// finite and min not greater than max on either axis.
func (b BoundingBox) Validate() error {
	for _, v := range []float64{b.MinX, b.MinY, b.MaxX, b.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidExtent
		}
	}
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		return ErrInvalidExtent
	}
	return nil
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

func (b BoundingBox) shiftX(d float64) BoundingBox {
	b.MinX += d
	b.MaxX += d
	return b
}

// Overlap intersects b with o. When maxLongitude is positive and o lies
// entirely on the far side of the antimeridian relative to b, o is shifted
// by one world width (2 * maxLongitude) before intersecting, so extents that
// meet across the seam produce their contact box. The second return value is
// false when the boxes do not intersect. A degenerate intersection of zero
// width or height is kept only when allowEmpty is set or the antimeridian
// shift was applied.
func (b BoundingBox) Overlap(o BoundingBox, allowEmpty bool, maxLongitude float64) (BoundingBox, bool) {
	if maxLongitude > 0 {
		if b.MinX > o.MaxX {
			o = o.shiftX(2 * maxLongitude)
			allowEmpty = true
		} else if b.MaxX < o.MinX {
			o = o.shiftX(-2 * maxLongitude)
			allowEmpty = true
		}
	}
	ov := BoundingBox{
		MinX: math.Max(b.MinX, o.MinX),
		MinY: math.Max(b.MinY, o.MinY),
		MaxX: math.Min(b.MaxX, o.MaxX),
		MaxY: math.Min(b.MaxY, o.MaxY),
	}
	if ov.MinX > ov.MaxX || ov.MinY > ov.MaxY {
		return BoundingBox{}, false
	}
	if !allowEmpty && (ov.MinX == ov.MaxX || ov.MinY == ov.MaxY) {
		return BoundingBox{}, false
	}
	return ov, true
}

// ContainsPoint reports whether the point lies on or inside the box,
// folding the point across the antimeridian when maxLongitude is positive.
func (b BoundingBox) ContainsPoint(x, y, maxLongitude float64) bool {
	p := BoundingBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
	_, ok := b.Overlap(p, true, maxLongitude)
	return ok
}

// XPixel maps a longitude to its fractional x pixel within a raster of the
// given pixel width covering box. Pixels grow eastward from the west edge.
func XPixel(width int, box BoundingBox, longitude float64) float64 {
	return (longitude - box.MinX) / spanOrEpsilon(box.Width()) * float64(width)
}

// YPixel maps a latitude to its fractional y pixel within a raster of the
// given pixel height covering box. Pixels grow southward from the north
// edge.
func YPixel(height int, box BoundingBox, latitude float64) float64 {
	return (box.MaxY - latitude) / spanOrEpsilon(box.Height()) * float64(height)
}

// LongitudeFromPixel converts a fractional x pixel of a tile raster of the
// given pixel width covering tileBox into a longitude offset from box's
// west edge.
func LongitudeFromPixel(width int, box, tileBox BoundingBox, pixel float64) float64 {
	return box.MinX + pixel/float64(width)*tileBox.Width()
}

// LatitudeFromPixel converts a fractional y pixel of a tile raster of the
// given pixel height covering tileBox into a latitude offset from box's
// north edge.
func LatitudeFromPixel(height int, box, tileBox BoundingBox, pixel float64) float64 {
	return box.MaxY - pixel/float64(height)*tileBox.Height()
}

// spanOrEpsilon substitutes the smallest positive value for a zero span so
// degenerate boxes map their own edges without dividing by zero.
func spanOrEpsilon(span float64) float64 {
	if span == 0 {
		return math.SmallestNonzeroFloat64
	}
	return span
}

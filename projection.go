package tileraster

import (
	vec2d "github.com/flywave/go3d/float64/vec2"

	"github.com/flywave/go-geo"
	"github.com/pkg/errors"
)

// Reprojector transforms bounding boxes between spatial reference systems.
type Reprojector interface {
	TransformBoundingBox(box BoundingBox, sourceSRS, targetSRS int) (BoundingBox, error)
}

// GeoReprojector backs Reprojector with proj transformations.
type GeoReprojector struct{}

func (GeoReprojector) TransformBoundingBox(box BoundingBox, sourceSRS, targetSRS int) (BoundingBox, error) {
	if sourceSRS == targetSRS {
		return box, nil
	}

	src := geo.NewProj(sourceSRS)
	dst := geo.NewProj(targetSRS)
	if src == nil || dst == nil {
		return BoundingBox{}, errors.Wrapf(ErrUnsupportedProjection, "srs %d to %d", sourceSRS, targetSRS)
	}

	cov := geo.NewBBoxCoverage(vec2d.Rect{
		Min: vec2d.T{box.MinX, box.MinY},
		Max: vec2d.T{box.MaxX, box.MaxY},
	}, src, false)

	bbox := cov.TransformTo(dst).GetBBox()
	out := NewBoundingBox(bbox.Min[0], bbox.Min[1], bbox.Max[0], bbox.Max[1])
	if err := out.Validate(); err != nil {
		return BoundingBox{}, errors.Wrapf(err, "transforming srs %d to %d", sourceSRS, targetSRS)
	}
	return out, nil
}

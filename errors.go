package tileraster

import "github.com/pkg/errors"

var (
	// ErrInvalidExtent rejects request extents with non finite corners or
	// inverted axes before any tile math runs.
	ErrInvalidExtent = errors.New("invalid extent")

	// ErrUnsupportedProjection is returned when a spatial reference system
	// cannot be resolved for transformation.
	ErrUnsupportedProjection = errors.New("unsupported projection")

	// ErrUnsupportedFormat is returned when tile data cannot be encoded or
	// decoded in the requested format.
	ErrUnsupportedFormat = errors.New("unsupported tile format")
)

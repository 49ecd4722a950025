package tileraster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var matrixBox = NewBoundingBox(0, 0, 512, 512)

func TestTileColumn(t *testing.T) {
	tests := []struct {
		name      string
		longitude float64
		want      int64
	}{
		{"west of matrix", -1, -1},
		{"west edge", 0, 0},
		{"inside first column", 127.9, 0},
		{"column boundary", 128, 1},
		{"inside last column", 511.9, 3},
		{"east edge", 512, 4},
		{"east of matrix", 600, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TileColumn(matrixBox, 4, tt.longitude))
		})
	}
}

func TestTileRow(t *testing.T) {
	tests := []struct {
		name     string
		latitude float64
		want     int64
	}{
		{"north of matrix", 600, -1},
		{"north edge", 512, -1},
		{"inside top row", 511.9, 0},
		{"row boundary", 384, 1},
		{"south edge", 0, 4},
		{"south of matrix", -5, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TileRow(matrixBox, 4, tt.latitude))
		})
	}
}

func TestMatrixTileGrid(t *testing.T) {
	tests := []struct {
		name    string
		box     BoundingBox
		want    TileGrid
		overlap bool
	}{
		{
			name:    "interior box",
			box:     NewBoundingBox(100, 100, 300, 300),
			want:    NewTileGrid(0, 1, 2, 3),
			overlap: true,
		},
		{
			name:    "clamped southwest corner",
			box:     NewBoundingBox(-50, -50, 80, 80),
			want:    NewTileGrid(0, 3, 0, 3),
			overlap: true,
		},
		{
			name:    "full matrix",
			box:     matrixBox,
			want:    NewTileGrid(0, 0, 3, 3),
			overlap: true,
		},
		{
			name: "east of matrix",
			box:  NewBoundingBox(600, 0, 700, 100),
		},
		{
			name: "north of matrix",
			box:  NewBoundingBox(0, 600, 100, 700),
		},
		{
			name:    "edges on interior boundaries stay with their tile",
			box:     NewBoundingBox(256, 256, 384, 384),
			want:    NewTileGrid(2, 1, 2, 1),
			overlap: true,
		},
		{
			name:    "degenerate box on a boundary",
			box:     NewBoundingBox(128, 128, 128, 128),
			want:    NewTileGrid(1, 3, 1, 3),
			overlap: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, ok := MatrixTileGrid(matrixBox, 4, 4, tt.box)
			require.Equal(t, tt.overlap, ok)
			if ok {
				require.Equal(t, tt.want, grid)
			}
		})
	}
}

func TestGridBoundingBox(t *testing.T) {
	full := GridBoundingBox(matrixBox, 4, 4, NewTileGrid(0, 0, 3, 3))
	require.Equal(t, matrixBox, full)

	single := GridBoundingBox(matrixBox, 4, 4, NewTileGrid(2, 1, 2, 1))
	require.Equal(t, NewBoundingBox(256, 256, 384, 384), single)

	block := GridBoundingBox(matrixBox, 4, 4, NewTileGrid(1, 0, 2, 1))
	require.Equal(t, NewBoundingBox(128, 256, 384, 512), block)
}

func TestTileBoundingBox(t *testing.T) {
	require.Equal(t, NewBoundingBox(256, 256, 384, 384), TileBoundingBox(matrixBox, 4, 4, 2, 1))
	require.Equal(t, NewBoundingBox(0, 384, 128, 512), TileBoundingBox(matrixBox, 4, 4, 0, 0))
	require.Equal(t, NewBoundingBox(384, 0, 512, 128), TileBoundingBox(matrixBox, 4, 4, 3, 3))
}

package tileraster

// TileColumn returns the column of the tile containing longitude within a
// matrix of matrixWidth columns spanning totalBox. Longitudes west of the
// box yield -1, longitudes on or beyond the east edge yield matrixWidth.
func TileColumn(totalBox BoundingBox, matrixWidth int64, longitude float64) int64 {
	if longitude < totalBox.MinX {
		return -1
	}
	if longitude >= totalBox.MaxX {
		return matrixWidth
	}
	tileWidth := totalBox.Width() / float64(matrixWidth)
	return int64((longitude - totalBox.MinX) / tileWidth)
}

// TileRow returns the row of the tile containing latitude within a matrix
// of matrixHeight rows spanning totalBox. Row zero is the top row, so
// latitudes on or above the north edge yield -1 and latitudes below the
// south edge yield matrixHeight.
func TileRow(totalBox BoundingBox, matrixHeight int64, latitude float64) int64 {
	if latitude < totalBox.MinY {
		return matrixHeight
	}
	if latitude >= totalBox.MaxY {
		return -1
	}
	tileHeight := totalBox.Height() / float64(matrixHeight)
	return int64((totalBox.MaxY - latitude) / tileHeight)
}

// MatrixTileGrid returns the grid of matrix tiles touched by box, clamped
// to the matrix bounds. A box edge landing exactly on an interior tile
// boundary stays with the lower indexed tile instead of pulling in a zero
// width slice of the next one. ok is false when box lies entirely outside
// totalBox on either axis; the zero grid returned then carries no meaning.
func MatrixTileGrid(totalBox BoundingBox, matrixWidth, matrixHeight int64, box BoundingBox) (TileGrid, bool) {
	minColumn := TileColumn(totalBox, matrixWidth, box.MinX)
	maxColumn := TileColumn(totalBox, matrixWidth, box.MaxX)
	minRow := TileRow(totalBox, matrixHeight, box.MaxY)
	maxRow := TileRow(totalBox, matrixHeight, box.MinY)

	if maxColumn > minColumn && maxColumn < matrixWidth {
		tileWidth := totalBox.Width() / float64(matrixWidth)
		if box.MaxX == totalBox.MinX+float64(maxColumn)*tileWidth {
			maxColumn--
		}
	}
	if maxRow > minRow && maxRow < matrixHeight {
		tileHeight := totalBox.Height() / float64(matrixHeight)
		if box.MinY == totalBox.MaxY-float64(maxRow)*tileHeight {
			maxRow--
		}
	}

	if minColumn >= matrixWidth || maxColumn < 0 || minRow >= matrixHeight || maxRow < 0 {
		return TileGrid{}, false
	}
	if minColumn < 0 {
		minColumn = 0
	}
	if maxColumn >= matrixWidth {
		maxColumn = matrixWidth - 1
	}
	if minRow < 0 {
		minRow = 0
	}
	if maxRow >= matrixHeight {
		maxRow = matrixHeight - 1
	}
	return TileGrid{MinX: minColumn, MinY: minRow, MaxX: maxColumn, MaxY: maxRow}, true
}

// GridBoundingBox returns the extent covered by grid within a matrix of
// matrixWidth by matrixHeight tiles spanning totalBox.
func GridBoundingBox(totalBox BoundingBox, matrixWidth, matrixHeight int64, grid TileGrid) BoundingBox {
	tileWidth := totalBox.Width() / float64(matrixWidth)
	tileHeight := totalBox.Height() / float64(matrixHeight)
	return BoundingBox{
		MinX: totalBox.MinX + float64(grid.MinX)*tileWidth,
		MinY: totalBox.MaxY - float64(grid.MaxY+1)*tileHeight,
		MaxX: totalBox.MinX + float64(grid.MaxX+1)*tileWidth,
		MaxY: totalBox.MaxY - float64(grid.MinY)*tileHeight,
	}
}

// TileBoundingBox returns the extent of the single matrix tile at column,
// row.
func TileBoundingBox(totalBox BoundingBox, matrixWidth, matrixHeight int64, column, row int64) BoundingBox {
	return GridBoundingBox(totalBox, matrixWidth, matrixHeight, TileGrid{
		MinX: column,
		MinY: row,
		MaxX: column,
		MaxY: row,
	})
}

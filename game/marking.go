package game

// MarkTile applies the anti-cheat marking rules and flips the cell in
// place on success. The server-held called-image log is the only
// authority on what may be marked: a non-FREE cell whose image was
// never called is rejected no matter what the client believes.
func MarkTile(imageIDs []int, marked []bool, row, col int, called map[int]bool) error {
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return ErrInvalidPosition
	}

	idx := Index(row, col)
	if marked[idx] {
		return ErrAlreadyMarked
	}

	id := imageIDs[idx]
	if id != FreeSpace && !called[id] {
		return ErrNotCalledYet
	}

	marked[idx] = true
	return nil
}

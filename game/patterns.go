package game

// PatternType enumerates the closed set of win shapes.
type PatternType string

const (
	PatternLine        PatternType = "line"
	PatternDiagonal    PatternType = "diagonal"
	PatternFourCorners PatternType = "four_corners"
	PatternXPattern    PatternType = "x_pattern"
	PatternBlackout    PatternType = "blackout"
	PatternCustom      PatternType = "custom"
)

// Pattern is the win shape configured for a round. Positions is only
// used when Type is PatternCustom.
type Pattern struct {
	Type      PatternType `json:"type"`
	Name      string      `json:"name"`
	Positions [][2]int    `json:"positions,omitempty"`
}

// Validate rejects malformed patterns before they are stored. Custom
// patterns must carry at least one position and every position must
// lie on the grid.
func (p Pattern) Validate() error {
	if p.Type != PatternCustom {
		return nil
	}
	if len(p.Positions) == 0 {
		return ErrInvalidPosition
	}
	for _, rc := range p.Positions {
		if rc[0] < 0 || rc[0] >= GridSize || rc[1] < 0 || rc[1] >= GridSize {
			return ErrInvalidPosition
		}
	}
	return nil
}

// Match is the result of verifying a card against the called set.
// MatchedPositions holds flat slot indices.
type Match struct {
	IsWin            bool        `json:"is_win"`
	MatchedPattern   PatternType `json:"matched_pattern,omitempty"`
	MatchedPositions []int       `json:"matched_positions,omitempty"`
}

// StandardPatterns returns the selectable round patterns, the built-in
// kinds plus a few named custom shapes.
func StandardPatterns() []Pattern {
	return []Pattern{
		{Type: PatternLine, Name: "Any Line"},
		{Type: PatternDiagonal, Name: "Diagonal"},
		{Type: PatternFourCorners, Name: "Four Corners"},
		{Type: PatternXPattern, Name: "X Pattern"},
		{Type: PatternBlackout, Name: "Blackout"},
		{Type: PatternCustom, Name: "T Shape", Positions: [][2]int{
			{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}, {1, 2}, {2, 2}, {3, 2}, {4, 2},
		}},
		{Type: PatternCustom, Name: "L Shape", Positions: [][2]int{
			{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {4, 1}, {4, 2}, {4, 3}, {4, 4},
		}},
		{Type: PatternCustom, Name: "Plus Sign", Positions: [][2]int{
			{0, 2}, {1, 2}, {2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4}, {3, 2}, {4, 2},
		}},
	}
}

// positionMarked reports whether the slot at index counts as marked
// for verification: the FREE space always does, otherwise the slot's
// image must have been called.
func positionMarked(imageIDs []int, called map[int]bool, index int) bool {
	id := imageIDs[index]
	if id == FreeSpace || index == FreeIndex {
		return true
	}
	return called[id]
}

func checkPositions(imageIDs []int, called map[int]bool, positions []int) bool {
	for _, idx := range positions {
		if !positionMarked(imageIDs, called, idx) {
			return false
		}
	}
	return true
}

func rowPositions(row int) []int {
	positions := make([]int, GridSize)
	for col := 0; col < GridSize; col++ {
		positions[col] = Index(row, col)
	}
	return positions
}

func colPositions(col int) []int {
	positions := make([]int, GridSize)
	for row := 0; row < GridSize; row++ {
		positions[row] = Index(row, col)
	}
	return positions
}

func diagonalPositions(anti bool) []int {
	positions := make([]int, GridSize)
	for i := 0; i < GridSize; i++ {
		if anti {
			positions[i] = Index(i, GridSize-1-i)
		} else {
			positions[i] = Index(i, i)
		}
	}
	return positions
}

// checkPattern evaluates one pattern against the card and returns the
// matched positions, or nil when the pattern is not satisfied.
func checkPattern(imageIDs []int, called map[int]bool, p Pattern) []int {
	switch p.Type {
	case PatternLine:
		for row := 0; row < GridSize; row++ {
			if positions := rowPositions(row); checkPositions(imageIDs, called, positions) {
				return positions
			}
		}
		for col := 0; col < GridSize; col++ {
			if positions := colPositions(col); checkPositions(imageIDs, called, positions) {
				return positions
			}
		}
		return nil
	case PatternDiagonal:
		if positions := diagonalPositions(false); checkPositions(imageIDs, called, positions) {
			return positions
		}
		if positions := diagonalPositions(true); checkPositions(imageIDs, called, positions) {
			return positions
		}
		return nil
	case PatternFourCorners:
		positions := []int{
			Index(0, 0), Index(0, GridSize-1),
			Index(GridSize-1, 0), Index(GridSize-1, GridSize-1),
		}
		if checkPositions(imageIDs, called, positions) {
			return positions
		}
		return nil
	case PatternXPattern:
		positions := diagonalPositions(false)
		for _, idx := range diagonalPositions(true) {
			if idx != FreeIndex {
				positions = append(positions, idx)
			}
		}
		if checkPositions(imageIDs, called, positions) {
			return positions
		}
		return nil
	case PatternBlackout:
		positions := make([]int, TotalSpaces)
		for i := range positions {
			positions[i] = i
		}
		if checkPositions(imageIDs, called, positions) {
			return positions
		}
		return nil
	case PatternCustom:
		if len(p.Positions) == 0 {
			return nil
		}
		positions := make([]int, len(p.Positions))
		for i, rc := range p.Positions {
			// An off-grid position can never be marked, so the
			// pattern as a whole cannot match.
			if rc[0] < 0 || rc[0] >= GridSize || rc[1] < 0 || rc[1] >= GridSize {
				return nil
			}
			positions[i] = Index(rc[0], rc[1])
		}
		if checkPositions(imageIDs, called, positions) {
			return positions
		}
		return nil
	}
	return nil
}

// Verify checks the card against the called-image set for each required
// pattern in order. The first pattern that matches wins, which resolves
// ties when several patterns are satisfiable at once.
func Verify(imageIDs []int, called map[int]bool, required []Pattern) Match {
	for _, p := range required {
		if positions := checkPattern(imageIDs, called, p); positions != nil {
			return Match{
				IsWin:            true,
				MatchedPattern:   p.Type,
				MatchedPositions: positions,
			}
		}
	}
	return Match{IsWin: false}
}

package game

import "testing"

// sequentialCard lays out ids 1..24 row by row around the FREE center.
func sequentialCard() []int {
	imageIDs := make([]int, TotalSpaces)
	next := 1
	for i := range imageIDs {
		if i == FreeIndex {
			imageIDs[i] = FreeSpace
			continue
		}
		imageIDs[i] = next
		next++
	}
	return imageIDs
}

func calledSet(ids ...int) map[int]bool {
	called := make(map[int]bool, len(ids))
	for _, id := range ids {
		called[id] = true
	}
	return called
}

func TestVerifyLineRow(t *testing.T) {
	card := sequentialCard()
	// Row 0 holds ids 1..5.
	m := Verify(card, calledSet(1, 2, 3, 4, 5), []Pattern{{Type: PatternLine}})
	if !m.IsWin || m.MatchedPattern != PatternLine {
		t.Fatalf("expected line win, got %+v", m)
	}
	want := []int{0, 1, 2, 3, 4}
	for i, idx := range m.MatchedPositions {
		if idx != want[i] {
			t.Fatalf("matched positions = %v, want %v", m.MatchedPositions, want)
		}
	}

	// Removing any called image required for the line flips the result.
	for _, missing := range []int{1, 2, 3, 4, 5} {
		called := calledSet(1, 2, 3, 4, 5)
		delete(called, missing)
		if Verify(card, called, []Pattern{{Type: PatternLine}}).IsWin {
			t.Fatalf("line should not win without image %d", missing)
		}
	}
}

func TestVerifyLineColumnThroughFree(t *testing.T) {
	card := sequentialCard()
	// Column 2 is ids 3, 8, FREE, 15, 20.
	m := Verify(card, calledSet(3, 8, 15, 20), []Pattern{{Type: PatternLine}})
	if !m.IsWin {
		t.Fatalf("column through FREE should win, got %+v", m)
	}
}

func TestVerifyDiagonal(t *testing.T) {
	card := sequentialCard()
	// Main diagonal: ids 1, 7, FREE, 19, 25? -> indices 0,6,12,18,24 hold 1,7,-1,18,24.
	diag := []int{card[0], card[6], card[18], card[24]}
	if !Verify(card, calledSet(diag...), []Pattern{{Type: PatternDiagonal}}).IsWin {
		t.Fatal("main diagonal should win")
	}
	if Verify(card, calledSet(diag[:3]...), []Pattern{{Type: PatternDiagonal}}).IsWin {
		t.Fatal("incomplete diagonal should not win")
	}
}

func TestVerifyFourCorners(t *testing.T) {
	card := sequentialCard()
	corners := []int{card[0], card[4], card[20], card[24]}
	m := Verify(card, calledSet(corners...), []Pattern{{Type: PatternFourCorners}})
	if !m.IsWin || m.MatchedPattern != PatternFourCorners {
		t.Fatalf("expected four corners win, got %+v", m)
	}
	if Verify(card, calledSet(corners[:3]...), []Pattern{{Type: PatternFourCorners}}).IsWin {
		t.Fatal("three corners should not win")
	}
}

func TestVerifyXPattern(t *testing.T) {
	card := sequentialCard()
	var both []int
	for i := 0; i < GridSize; i++ {
		both = append(both, card[Index(i, i)], card[Index(i, GridSize-1-i)])
	}
	if !Verify(card, calledSet(both...), []Pattern{{Type: PatternXPattern}}).IsWin {
		t.Fatal("both diagonals should win the X pattern")
	}

	// One full diagonal alone is not an X.
	var one []int
	for i := 0; i < GridSize; i++ {
		one = append(one, card[Index(i, i)])
	}
	if Verify(card, calledSet(one...), []Pattern{{Type: PatternXPattern}}).IsWin {
		t.Fatal("single diagonal should not win the X pattern")
	}
}

func TestVerifyBlackout(t *testing.T) {
	card := sequentialCard()
	all := make([]int, 0, 24)
	for i, id := range card {
		if i != FreeIndex {
			all = append(all, id)
		}
	}
	if !Verify(card, calledSet(all...), []Pattern{{Type: PatternBlackout}}).IsWin {
		t.Fatal("all cells called should win blackout")
	}

	for _, missing := range all {
		called := calledSet(all...)
		delete(called, missing)
		if Verify(card, called, []Pattern{{Type: PatternBlackout}}).IsWin {
			t.Fatalf("blackout should not win without image %d", missing)
		}
	}
}

func TestVerifyCustom(t *testing.T) {
	card := sequentialCard()
	p := Pattern{Type: PatternCustom, Name: "Plus Sign", Positions: [][2]int{
		{0, 2}, {1, 2}, {2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4}, {3, 2}, {4, 2},
	}}
	var needed []int
	for _, rc := range p.Positions {
		if id := card[Index(rc[0], rc[1])]; id != FreeSpace {
			needed = append(needed, id)
		}
	}
	if !Verify(card, calledSet(needed...), []Pattern{p}).IsWin {
		t.Fatal("plus sign should win")
	}
	if Verify(card, calledSet(needed[1:]...), []Pattern{p}).IsWin {
		t.Fatal("incomplete plus sign should not win")
	}
}

func TestVerifyCustomOffGrid(t *testing.T) {
	card := sequentialCard()
	p := Pattern{Type: PatternCustom, Name: "Broken", Positions: [][2]int{{9, 9}}}
	if Verify(card, calledSet(1, 2, 3, 4, 5), []Pattern{p}).IsWin {
		t.Fatal("off-grid custom pattern must not win")
	}

	// A single off-grid position poisons the whole pattern even when
	// the rest of it is satisfied.
	p = Pattern{Type: PatternCustom, Name: "Broken", Positions: [][2]int{{0, 0}, {5, 0}}}
	if Verify(card, calledSet(1), []Pattern{p}).IsWin {
		t.Fatal("partially off-grid custom pattern must not win")
	}
}

func TestPatternValidate(t *testing.T) {
	cases := []struct {
		name string
		p    Pattern
		ok   bool
	}{
		{"builtin", Pattern{Type: PatternLine}, true},
		{"custom", Pattern{Type: PatternCustom, Positions: [][2]int{{0, 0}, {4, 4}}}, true},
		{"custom empty", Pattern{Type: PatternCustom}, false},
		{"row too large", Pattern{Type: PatternCustom, Positions: [][2]int{{9, 9}}}, false},
		{"negative col", Pattern{Type: PatternCustom, Positions: [][2]int{{0, -1}}}, false},
	}
	for _, tc := range cases {
		err := tc.p.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err != ErrInvalidPosition {
			t.Errorf("%s: expected ErrInvalidPosition, got %v", tc.name, err)
		}
	}
}

func TestVerifyFirstMatchWins(t *testing.T) {
	card := sequentialCard()
	// Row 0 complete and corners complete at the same time.
	called := calledSet(1, 2, 3, 4, 5, card[20], card[24])

	m := Verify(card, called, []Pattern{{Type: PatternFourCorners}, {Type: PatternLine}})
	if m.MatchedPattern != PatternFourCorners {
		t.Fatalf("corner-first ordering matched %q", m.MatchedPattern)
	}

	m = Verify(card, called, []Pattern{{Type: PatternLine}, {Type: PatternFourCorners}})
	if m.MatchedPattern != PatternLine {
		t.Fatalf("line-first ordering matched %q", m.MatchedPattern)
	}
}

func TestVerifyNoMatch(t *testing.T) {
	m := Verify(sequentialCard(), calledSet(1, 2), []Pattern{
		{Type: PatternLine}, {Type: PatternDiagonal}, {Type: PatternBlackout},
	})
	if m.IsWin || m.MatchedPattern != "" || m.MatchedPositions != nil {
		t.Fatalf("expected no win, got %+v", m)
	}
}

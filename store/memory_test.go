package store

import (
	"context"
	"sync"
	"testing"

	"github.com/picbingo/bingo-backend/models"
)

func newSession(t *testing.T, m *Memory) *models.GameSession {
	t.Helper()
	s := &models.GameSession{SessionCode: "TESTCODE", Status: models.StatusWaiting}
	if err := m.CreateSession(context.Background(), s); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return s
}

func TestAppendCalledImageOrdering(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	s := newSession(t, m)

	for i, imageID := range []int{5, 12, 7} {
		entry, err := m.AppendCalledImage(ctx, s.ID, 1, imageID)
		if err != nil {
			t.Fatalf("AppendCalledImage: %v", err)
		}
		if entry.CalledOrder != i+1 {
			t.Fatalf("called order = %d, want %d", entry.CalledOrder, i+1)
		}
	}

	// A new round starts its own sequence at 1.
	entry, err := m.AppendCalledImage(ctx, s.ID, 2, 9)
	if err != nil {
		t.Fatalf("AppendCalledImage round 2: %v", err)
	}
	if entry.CalledOrder != 1 {
		t.Fatalf("round 2 first order = %d, want 1", entry.CalledOrder)
	}
}

func TestAppendCalledImageConcurrent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	s := newSession(t, m)

	const n = 50
	var wg sync.WaitGroup
	orders := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(imageID int) {
			defer wg.Done()
			entry, err := m.AppendCalledImage(ctx, s.ID, 1, imageID)
			if err != nil {
				t.Errorf("AppendCalledImage: %v", err)
				return
			}
			orders <- entry.CalledOrder
		}(i)
	}
	wg.Wait()
	close(orders)

	seen := make(map[int]bool, n)
	for order := range orders {
		if seen[order] {
			t.Fatalf("duplicate called order %d", order)
		}
		seen[order] = true
	}
	for i := 1; i <= n; i++ {
		if !seen[i] {
			t.Fatalf("missing called order %d", i)
		}
	}
}

func TestVerifyClaimOnce(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	s := newSession(t, m)

	claim := &models.BingoClaim{SessionID: s.ID, PlayerID: 1, RoundNumber: 1}
	if err := m.CreateClaim(ctx, claim); err != nil {
		t.Fatalf("CreateClaim: %v", err)
	}

	first, flipped, err := m.VerifyClaim(ctx, claim.ID)
	if err != nil {
		t.Fatalf("VerifyClaim: %v", err)
	}
	if !first.Verified || first.VerifiedAt == nil {
		t.Fatalf("claim not verified: %+v", first)
	}
	if !flipped {
		t.Fatal("first verify should report the flip")
	}

	second, flipped, err := m.VerifyClaim(ctx, claim.ID)
	if err != nil {
		t.Fatalf("VerifyClaim again: %v", err)
	}
	if flipped {
		t.Fatal("second verify must not report a flip")
	}
	if !second.VerifiedAt.Equal(*first.VerifiedAt) {
		t.Fatal("verifiedAt must be set exactly once")
	}
}

func TestCardForRoundReturnsLatest(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	old := &models.BingoCard{CardID: "AAAAA", PlayerID: 7, RoundNumber: 1}
	if err := m.CreateCard(ctx, old); err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	current := &models.BingoCard{CardID: "BBBBB", PlayerID: 7, RoundNumber: 1}
	if err := m.CreateCard(ctx, current); err != nil {
		t.Fatalf("CreateCard: %v", err)
	}

	got, err := m.CardForRound(ctx, 7, 1)
	if err != nil {
		t.Fatalf("CardForRound: %v", err)
	}
	if got.CardID != "BBBBB" {
		t.Fatalf("expected latest card, got %q", got.CardID)
	}
}

func TestCreateCardDuplicateID(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.CreateCard(ctx, &models.BingoCard{CardID: "AAAAA"}); err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	if err := m.CreateCard(ctx, &models.BingoCard{CardID: "AAAAA"}); err != models.ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestNotFoundErrors(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.SessionByCode(ctx, "NOPE"); err != models.ErrSessionNotFound {
		t.Fatalf("SessionByCode: %v", err)
	}
	if _, err := m.PlayerByUUID(ctx, "nope"); err != models.ErrPlayerNotFound {
		t.Fatalf("PlayerByUUID: %v", err)
	}
	if _, err := m.CardByCardID(ctx, "ZZZZZ"); err != models.ErrCardNotFound {
		t.Fatalf("CardByCardID: %v", err)
	}
	if _, err := m.ClaimByID(ctx, 99); err != models.ErrClaimNotFound {
		t.Fatalf("ClaimByID: %v", err)
	}
}

package game

import "math/rand"

const (
	GridSize    = 5
	TotalSpaces = GridSize * GridSize

	// FreeSpace is the image id of the center tile. It is always
	// treated as marked.
	FreeSpace = -1
	// FreeIndex is the flat index of the center tile (row 2, col 2).
	FreeIndex = 12
)

// cardIDChars excludes O, 0, I and 1 so printed card ids stay legible.
const cardIDChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const CardIDLength = 5

// Card is a generated 5x5 card: a printable card id plus the flat
// 25-slot image id layout. The layout is immutable once generated.
type Card struct {
	CardID   string `json:"card_id"`
	ImageIDs []int  `json:"image_ids"`
}

// Index converts grid coordinates to a flat slot index.
func Index(row, col int) int {
	return row*GridSize + col
}

// GenerateCardID returns a 5-character card id drawn from a restricted
// alphabet.
func GenerateCardID() string {
	b := make([]byte, CardIDLength)
	for i := range b {
		b[i] = cardIDChars[rand.Intn(len(cardIDChars))]
	}
	return string(b)
}

// GenerateCard builds one card layout from the image pool: Fisher-Yates
// shuffle, take the first 24 ids, center slot is the FREE space. The
// pool must hold at least 24 ids.
func GenerateCard(pool []int) ([]int, error) {
	if len(pool) < TotalSpaces-1 {
		return nil, ErrInsufficientPool
	}

	shuffled := append([]int(nil), pool...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	imageIDs := make([]int, TotalSpaces)
	next := 0
	for i := 0; i < TotalSpaces; i++ {
		if i == FreeIndex {
			imageIDs[i] = FreeSpace
			continue
		}
		imageIDs[i] = shuffled[next]
		next++
	}
	return imageIDs, nil
}

// GenerateCards builds n cards with card ids unique within the batch.
// Id collisions are retried locally and never surface to the caller.
func GenerateCards(n int, pool []int) ([]Card, error) {
	cards := make([]Card, 0, n)
	used := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		imageIDs, err := GenerateCard(pool)
		if err != nil {
			return nil, err
		}
		id := GenerateCardID()
		for used[id] {
			id = GenerateCardID()
		}
		used[id] = true
		cards = append(cards, Card{CardID: id, ImageIDs: imageIDs})
	}
	return cards, nil
}

// NewMarked returns the initial marked grid for a fresh card: all false
// except the FREE space.
func NewMarked() []bool {
	marked := make([]bool, TotalSpaces)
	marked[FreeIndex] = true
	return marked
}

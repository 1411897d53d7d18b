package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Image is one catalog entry. Only the id matters to the game core;
// the description feeds the image_called broadcast.
type Image struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Provider yields the active image pool for card generation, image
// descriptions for broadcasts, and the full listing for host pickers.
type Provider interface {
	ImageIDs() []int
	Describe(id int) string
	Images() []Image
}

// Static is an in-memory catalog.
type Static struct {
	images []Image
	byID   map[int]Image
}

func NewStatic(images []Image) *Static {
	byID := make(map[int]Image, len(images))
	for _, img := range images {
		byID[img.ID] = img
	}
	return &Static{images: images, byID: byID}
}

// Load reads the catalog from a JSON file at startup.
func Load(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var images []Image
	if err := json.Unmarshal(data, &images); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return NewStatic(images), nil
}

func (s *Static) ImageIDs() []int {
	ids := make([]int, len(s.images))
	for i, img := range s.images {
		ids[i] = img.ID
	}
	return ids
}

func (s *Static) Describe(id int) string {
	return s.byID[id].Description
}

func (s *Static) Images() []Image {
	return append([]Image(nil), s.images...)
}

func (s *Static) Len() int {
	return len(s.images)
}

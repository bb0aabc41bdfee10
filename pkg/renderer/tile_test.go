package renderer

import (
	"image"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
		lastBounds    image.Rectangle
	}{
		{"exact fit", 8, 8, 4, 4, image.Rect(4, 4, 8, 8)},
		{"clipped edges", 10, 7, 4, 6, image.Rect(8, 4, 10, 7)},
		{"single tile", 3, 2, 64, 1, image.Rect(0, 0, 3, 2)},
		{"one pixel tiles", 2, 2, 1, 4, image.Rect(1, 1, 2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 0)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}
			if last := tiles[len(tiles)-1].Bounds; last != tt.lastBounds {
				t.Errorf("Expected last tile %v, got %v", tt.lastBounds, last)
			}

			// Every pixel is covered exactly once
			coverage := make([]int, tt.width*tt.height)
			for id, tile := range tiles {
				if tile.ID != id {
					t.Errorf("Expected tile ID %d, got %d", id, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						coverage[y*tt.width+x]++
					}
				}
			}
			for i, c := range coverage {
				if c != 1 {
					t.Fatalf("Pixel %d covered %d times", i, c)
				}
			}
		})
	}
}

func TestNewTile_SeedsFromBaseSeedPlusID(t *testing.T) {
	tile := NewTile(3, image.Rect(0, 0, 1, 1), 100)
	reference := core.NewSeededSampler(103)

	for i := 0; i < 5; i++ {
		if got, want := tile.Sampler.Get1D(), reference.Get1D(); got != want {
			t.Fatalf("Draw %d: expected %f, got %f", i, want, got)
		}
	}
}

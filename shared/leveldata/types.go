// Package leveldata provides the immutable level model, its TMX parser and
// the registry levels are looked up from.
// It has no dependencies on ebitengine or donburi — pure data only.
package leveldata

import (
	"errors"
	"fmt"

	"github.com/automoto/tiledoor/shared/gamemath"
)

// DefaultWalkableCode is the collision cell code treated as walkable when a
// level does not declare its own.
const DefaultWalkableCode = 1

var (
	ErrInvalidDimensions = errors.New("invalid level dimensions")
	ErrDuplicateLayer    = errors.New("duplicate layer")
	ErrCollisionSize     = errors.New("collision layer size mismatch")
)

// LayerKind tags which variant a Layer holds.
type LayerKind int

const (
	LayerCollision LayerKind = iota
	LayerDoors
)

func (k LayerKind) String() string {
	switch k {
	case LayerCollision:
		return "collision"
	case LayerDoors:
		return "doors"
	}
	return fmt.Sprintf("LayerKind(%d)", int(k))
}

// CollisionLayer is a row-major grid of cell codes. Cells equal to
// WalkableCode are walkable, every other code is blocked.
type CollisionLayer struct {
	Width        int
	Height       int
	Cells        []int
	WalkableCode int
}

// Code returns the cell code at (col, row). ok is false out of bounds.
func (c *CollisionLayer) Code(col, row int) (code int, ok bool) {
	if !gamemath.CellInBounds(col, row, c.Width, c.Height) {
		return 0, false
	}
	return c.Cells[gamemath.CellIndex(col, row, c.Width)], true
}

// Door is a rectangular region that sends the player to another level.
type Door struct {
	X, Y, Width, Height float64

	DestinationLevel string
	DestinationX     int // grid column in the destination level
	DestinationY     int // grid row in the destination level
}

// Bounds returns the door rectangle in pixels.
func (d Door) Bounds() gamemath.Rect {
	return gamemath.Rect{X: d.X, Y: d.Y, W: d.Width, H: d.Height}
}

// DestinationPixel converts the destination cell into pixels using the
// destination level's tile size.
func (d Door) DestinationPixel(tileSize int) (x, y float64) {
	return gamemath.CellToPixel(d.DestinationX, d.DestinationY, tileSize)
}

// Layer is a tagged variant: Collision is set for LayerCollision, Doors for
// LayerDoors.
type Layer struct {
	Kind      LayerKind
	Name      string
	Collision *CollisionLayer
	Doors     []Door
}

// PropSpawn is a decorative object placed by the level on first visit.
type PropSpawn struct {
	Name                string
	X, Y, Width, Height float64
}

// Level is a parsed level. It must not be mutated after registration.
type Level struct {
	ID         string
	GridWidth  int
	GridHeight int
	TileSize   int
	Layers     []Layer

	Props []PropSpawn

	SpawnX, SpawnY float64
	HasSpawn       bool
}

// PixelWidth returns the level width in pixels.
func (l *Level) PixelWidth() int {
	return l.GridWidth * l.TileSize
}

// PixelHeight returns the level height in pixels.
func (l *Level) PixelHeight() int {
	return l.GridHeight * l.TileSize
}

// Collision returns the level's collision layer, or nil when it has none.
func (l *Level) Collision() *CollisionLayer {
	for i := range l.Layers {
		if l.Layers[i].Kind == LayerCollision {
			return l.Layers[i].Collision
		}
	}
	return nil
}

// Doors returns the doors in level-data order.
func (l *Level) Doors() []Door {
	for i := range l.Layers {
		if l.Layers[i].Kind == LayerDoors {
			return l.Layers[i].Doors
		}
	}
	return nil
}

// Validate checks the invariants the engine relies on: positive dimensions,
// at most one layer of each kind and a collision grid matching the level.
func (l *Level) Validate() error {
	if l.GridWidth <= 0 || l.GridHeight <= 0 || l.TileSize <= 0 {
		return fmt.Errorf("level %q: %w: %dx%d tile %d", l.ID, ErrInvalidDimensions, l.GridWidth, l.GridHeight, l.TileSize)
	}

	seen := make(map[LayerKind]bool, len(l.Layers))
	for _, layer := range l.Layers {
		if seen[layer.Kind] {
			return fmt.Errorf("level %q: %w: %s", l.ID, ErrDuplicateLayer, layer.Kind)
		}
		seen[layer.Kind] = true

		if layer.Kind != LayerCollision {
			continue
		}
		c := layer.Collision
		if c == nil || c.Width != l.GridWidth || c.Height != l.GridHeight || len(c.Cells) != c.Width*c.Height {
			return fmt.Errorf("level %q: %w", l.ID, ErrCollisionSize)
		}
	}
	return nil
}

package assets

import (
	"embed"
	"fmt"

	"github.com/automoto/tiledoor/shared/leveldata"
)

var (
	//go:embed all:levels
	assetFS embed.FS
)

// LevelsDir is the embedded directory holding the TMX levels.
const LevelsDir = "levels"

// LoadLevels parses every embedded level into a registry and checks that
// each door leads to a known level and lands inside it.
func LoadLevels() (*leveldata.Registry, error) {
	levels, err := leveldata.LoadDir(assetFS, LevelsDir)
	if err != nil {
		return nil, err
	}

	registry := leveldata.NewRegistry()
	for _, l := range levels {
		if err := registry.Add(l); err != nil {
			return nil, err
		}
	}

	for _, l := range levels {
		for i, door := range l.Doors() {
			dest, ok := registry.Level(door.DestinationLevel)
			if !ok {
				return nil, fmt.Errorf("level %q door %d: unknown destination %q", l.ID, i, door.DestinationLevel)
			}
			if door.DestinationX < 0 || door.DestinationX >= dest.GridWidth ||
				door.DestinationY < 0 || door.DestinationY >= dest.GridHeight {
				return nil, fmt.Errorf("level %q door %d: destination (%d,%d) outside %q",
					l.ID, i, door.DestinationX, door.DestinationY, dest.ID)
			}
		}
	}
	return registry, nil
}

// MustLoadLevels is LoadLevels for startup code.
func MustLoadLevels() *leveldata.Registry {
	registry, err := LoadLevels()
	if err != nil {
		panic(fmt.Sprintf("load levels: %v", err))
	}
	return registry
}

package leveldata

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Tiled layer and object group names the loader understands.
const (
	CollisionLayerName = "collision"
	DoorsGroupName     = "doors"
	PropsGroupName     = "props"
	SpawnGroupName     = "spawn"
)

// LoadLevel parses a TMX file into a Level. It takes an fs.FS so callers can
// pass embed.FS (game) or os.DirFS / fstest.MapFS (tools and tests).
func LoadLevel(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	if levelMap.TileWidth != levelMap.TileHeight {
		return nil, fmt.Errorf("load TMX %s: %w: non-square tiles %dx%d",
			tmxPath, ErrInvalidDimensions, levelMap.TileWidth, levelMap.TileHeight)
	}

	level := &Level{
		ID:         strings.TrimSuffix(path.Base(tmxPath), path.Ext(tmxPath)),
		GridWidth:  levelMap.Width,
		GridHeight: levelMap.Height,
		TileSize:   levelMap.TileWidth,
	}

	walkable := DefaultWalkableCode
	if levelMap.Properties != nil {
		if id := levelMap.Properties.GetString("id"); id != "" {
			level.ID = id
		}
		if code := levelMap.Properties.GetString("walkable"); code != "" {
			walkable = levelMap.Properties.GetInt("walkable")
		}
	}

	// Collision cells use global tile ids so they match what the editor shows.
	for _, layer := range levelMap.Layers {
		if layer.Name != CollisionLayerName {
			continue
		}
		cells := make([]int, levelMap.Width*levelMap.Height)
		for i, tile := range layer.Tiles {
			if i >= len(cells) || tile == nil || tile.IsNil() {
				continue
			}
			cells[i] = int(tile.ID)
			if tile.Tileset != nil {
				cells[i] += int(tile.Tileset.FirstGID)
			}
		}
		level.Layers = append(level.Layers, Layer{
			Kind: LayerCollision,
			Name: layer.Name,
			Collision: &CollisionLayer{
				Width:        levelMap.Width,
				Height:       levelMap.Height,
				Cells:        cells,
				WalkableCode: walkable,
			},
		})
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case DoorsGroupName:
			doors := make([]Door, 0, len(og.Objects))
			for _, o := range og.Objects {
				door := Door{
					X:      o.X,
					Y:      o.Y,
					Width:  o.Width,
					Height: o.Height,
				}
				if o.Properties != nil {
					door.DestinationLevel = o.Properties.GetString("level")
					door.DestinationX = o.Properties.GetInt("destX")
					door.DestinationY = o.Properties.GetInt("destY")
				}
				doors = append(doors, door)
			}
			level.Layers = append(level.Layers, Layer{Kind: LayerDoors, Name: og.Name, Doors: doors})
		case PropsGroupName:
			for _, o := range og.Objects {
				name := o.Name
				if name == "" {
					name = o.Class
				}
				level.Props = append(level.Props, PropSpawn{
					Name:   name,
					X:      o.X,
					Y:      o.Y,
					Width:  o.Width,
					Height: o.Height,
				})
			}
		case SpawnGroupName:
			if len(og.Objects) > 0 {
				level.SpawnX = og.Objects[0].X
				level.SpawnY = og.Objects[0].Y
				level.HasSpawn = true
			}
		}
	}

	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	return level, nil
}

// LoadDir discovers all .tmx files in dir within fsys and loads them, sorted
// by file name.
func LoadDir(fsys fs.FS, dir string) ([]*Level, error) {
	pattern := path.Join(dir, "*.tmx")
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .tmx files found in %s", dir)
	}
	sort.Strings(matches)

	levels := make([]*Level, 0, len(matches))
	for _, p := range matches {
		level, err := LoadLevel(fsys, p)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}

package systems

import (
	"log"
	"math"
	"sort"

	cfg "github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/scenes"
	"github.com/automoto/tiledoor/shared/gamemath"
	"github.com/automoto/tiledoor/shared/leveldata"
	"github.com/automoto/tiledoor/tags"
	"github.com/automoto/tiledoor/transition"
	"github.com/solarlune/resolv"
)

// TransitionStarter is the part of the transition machine the door trigger
// drives.
type TransitionStarter interface {
	Start(req transition.Request) bool
	IsActive() bool
}

// doorSpace indexes the doors of one level. The space covers the level and
// every door, shifted so its first cell starts at originX, originY. Door and
// probe objects are padded by one cell so that any real overlap shares a
// cell; the exact area test decides.
type doorSpace struct {
	space            *resolv.Space
	probe            *resolv.Object
	doors            []leveldata.Door
	originX, originY float64
	pad              float64
}

type doorKey struct {
	level string
	index int
}

// DoorTrigger starts a level transition when the player stands mostly inside
// a door. Door regions are indexed in a resolv space per level.
type DoorTrigger struct {
	levels  LevelSource
	machine TransitionStarter
	spaces  map[string]*doorSpace
	warned  map[doorKey]bool
}

func NewDoorTrigger(levels LevelSource, machine TransitionStarter) *DoorTrigger {
	return &DoorTrigger{
		levels:  levels,
		machine: machine,
		spaces:  make(map[string]*doorSpace),
		warned:  make(map[doorKey]bool),
	}
}

// Run is the update stage.
func (d *DoorTrigger) Run(ctx *scenes.Context) {
	if d.machine.IsActive() {
		return
	}
	level, ok := d.levels.Level(ctx.Scene.Level)
	if !ok {
		return
	}
	fp, ok := PlayerFootprint(ctx.World)
	if !ok {
		return
	}
	d.Trigger(level, fp, ctx.Registry.Has)
}

// Trigger checks footprint against the doors of level in level-data order
// and starts a transition for the first one it overlaps by more than the
// configured fraction. sceneExists may be nil. It reports whether a
// transition was started.
func (d *DoorTrigger) Trigger(level *leveldata.Level, footprint gamemath.Rect, sceneExists func(string) bool) bool {
	if d.machine.IsActive() {
		return false
	}
	area := footprint.Area()
	if area <= 0 {
		return false
	}
	threshold := area * cfg.Door.OverlapThreshold

	ds := d.space(level)
	for _, i := range ds.candidates(footprint) {
		door := ds.doors[i]
		if footprint.OverlapArea(door.Bounds()) <= threshold {
			continue
		}

		dest, ok := d.destination(level, i, door, sceneExists)
		if !ok {
			continue
		}
		x, y := door.DestinationPixel(dest.TileSize)
		return d.machine.Start(transition.Request{
			Scene:      dest.ID,
			Duration:   cfg.Transition.DoorDuration,
			Reposition: &transition.Point{X: x, Y: y},
		})
	}
	return false
}

func (d *DoorTrigger) destination(level *leveldata.Level, i int, door leveldata.Door, sceneExists func(string) bool) (*leveldata.Level, bool) {
	var reason string
	dest, ok := d.levels.Level(door.DestinationLevel)
	switch {
	case door.DestinationLevel == "":
		reason = "has no destination"
	case !ok:
		reason = "leads to unknown level " + door.DestinationLevel
	case sceneExists != nil && !sceneExists(dest.ID):
		reason = "leads to level " + dest.ID + " which has no scene"
	default:
		return dest, true
	}

	key := doorKey{level: level.ID, index: i}
	if !d.warned[key] {
		log.Printf("Warning: door %d in level %q %s", i, level.ID, reason)
		d.warned[key] = true
	}
	return nil, false
}

func (d *DoorTrigger) space(level *leveldata.Level) *doorSpace {
	if ds, ok := d.spaces[level.ID]; ok {
		return ds
	}

	doors := level.Doors()
	cell := max(level.TileSize, 1)
	bounds := gamemath.Rect{W: float64(level.PixelWidth()), H: float64(level.PixelHeight())}
	for _, door := range doors {
		bounds = bounds.Union(door.Bounds())
	}
	minCol, minRow := gamemath.PixelToCell(int(math.Floor(bounds.X)), int(math.Floor(bounds.Y)), cell)
	maxCol, maxRow := gamemath.PixelToCell(int(math.Floor(bounds.X+bounds.W)), int(math.Floor(bounds.Y+bounds.H)), cell)
	originX, originY := gamemath.CellToPixel(minCol, minRow, cell)

	ds := &doorSpace{
		space:   resolv.NewSpace((maxCol-minCol+1)*cell, (maxRow-minRow+1)*cell, cell, cell),
		doors:   doors,
		originX: originX,
		originY: originY,
		pad:     float64(cell),
	}
	for i, door := range doors {
		obj := ds.object(door.Bounds(), tags.ResolvDoor)
		obj.Data = i
		ds.space.Add(obj)
	}
	ds.probe = ds.object(gamemath.Rect{W: 1, H: 1}, tags.ResolvProbe)
	ds.space.Add(ds.probe)

	d.spaces[level.ID] = ds
	return ds
}

// object returns a resolv object for r in space coordinates, padded by one
// cell on every side.
func (ds *doorSpace) object(r gamemath.Rect, tag string) *resolv.Object {
	return resolv.NewObject(
		r.X-ds.originX-ds.pad, r.Y-ds.originY-ds.pad,
		r.W+2*ds.pad, r.H+2*ds.pad,
		tag,
	)
}

// candidates returns the indices of doors that may overlap the footprint,
// sorted so earlier doors win.
func (ds *doorSpace) candidates(footprint gamemath.Rect) []int {
	if len(ds.doors) == 0 {
		return nil
	}
	ds.probe.X, ds.probe.Y = footprint.X-ds.originX-ds.pad, footprint.Y-ds.originY-ds.pad
	ds.probe.W, ds.probe.H = footprint.W+2*ds.pad, footprint.H+2*ds.pad
	ds.probe.Update()

	check := ds.probe.Check(0, 0, tags.ResolvDoor)
	if check == nil {
		return nil
	}
	seen := make(map[int]bool, len(check.Objects))
	out := make([]int, 0, len(check.Objects))
	for _, obj := range check.Objects {
		i, ok := obj.Data.(int)
		if !ok || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

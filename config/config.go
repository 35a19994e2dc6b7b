package config

import (
	"image/color"

	"github.com/tanema/gween/ease"
)

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	Speed float64 // pixels per second

	// Footprint relative to the entity position
	ColliderOffsetX float64
	ColliderOffsetY float64
	ColliderWidth   float64
	ColliderHeight  float64
}

// CollisionConfig contains collision resolver configuration values
type CollisionConfig struct {
	// DiagonalSweep runs a combined-axis check when neither single-axis sweep
	// collided. Off by default to keep the per-axis behaviour.
	DiagonalSweep bool
}

// TransitionConfig contains fade transition configuration values
type TransitionConfig struct {
	DefaultDuration float64 // seconds per fade phase
	DoorDuration    float64 // seconds per fade phase for door transitions
	MenuDuration    float64 // seconds per fade phase when leaving the title screen
	Easing          ease.TweenFunc
}

// DoorConfig contains door trigger configuration values
type DoorConfig struct {
	OverlapThreshold float64 // fraction of the player footprint that must overlap
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	FollowSmoothing float64 // How fast camera follows player (0.0-1.0)
}

// PaletteConfig maps fade levels (1 darkest .. 4 brightest) to colors.
type PaletteConfig struct {
	Levels [5]color.RGBA // index 0 unused

	Walkable int // color level for walkable cells
	Blocked  int // color level for blocked cells
	Door     int // color level for door regions
	Player   int // color level for the player
	Prop     int // color level for props
}

// WindowConfig contains host window options
type WindowConfig struct {
	Scales       []int
	DefaultScale int
	Title        string
}

// Config holds general game configuration
type Config struct {
	Width      int
	Height     int
	TPS        int
	StartLevel string // level entered from the title screen on a new game
	AppName    string // save data directory name
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	SkipMenu bool   // Skip the title screen and go directly to a level
	ShowHUD  bool   // Draw level id and transition phase
	Level    string // Level to start in when skipping the menu
}

// Global configuration instances
var C *Config
var Player PlayerConfig
var Collision CollisionConfig
var Transition TransitionConfig
var Door DoorConfig
var Camera CameraConfig
var Palette PaletteConfig
var Window WindowConfig
var Debug DebugConfig

// Scene names that are not levels
const (
	TitleScene = "title"
)

func init() {
	C = &Config{
		Width:      160,
		Height:     144,
		TPS:        60,
		StartLevel: "meadow",
		AppName:    "tiledoor",
	}

	Player = PlayerConfig{
		Speed:           48,
		ColliderOffsetX: 1,
		ColliderOffsetY: 2,
		ColliderWidth:   6,
		ColliderHeight:  6,
	}

	Collision = CollisionConfig{
		DiagonalSweep: false,
	}

	Transition = TransitionConfig{
		DefaultDuration: 0.5,
		DoorDuration:    0.35,
		MenuDuration:    0.6,
		Easing:          ease.Linear,
	}

	Door = DoorConfig{
		OverlapThreshold: 0.5,
	}

	Camera = CameraConfig{
		FollowSmoothing: 0.2,
	}

	// Four-shade handheld palette
	Palette = PaletteConfig{
		Levels: [5]color.RGBA{
			{},
			{R: 15, G: 56, B: 15, A: 255},
			{R: 48, G: 98, B: 48, A: 255},
			{R: 139, G: 172, B: 15, A: 255},
			{R: 155, G: 188, B: 15, A: 255},
		},
		Walkable: 4,
		Blocked:  2,
		Door:     3,
		Player:   1,
		Prop:     2,
	}

	Window = WindowConfig{
		Scales:       []int{2, 3, 4, 5},
		DefaultScale: 4,
		Title:        "tiledoor",
	}

	// Debug Config (defaults, can be overridden by CLI flags)
	Debug = DebugConfig{
		SkipMenu: false,
		ShowHUD:  false,
	}
}

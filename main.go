package main

import (
	"flag"
	"log"
	"slices"

	"github.com/automoto/tiledoor/assets"
	"github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/fonts"
	"github.com/automoto/tiledoor/game"
	"github.com/automoto/tiledoor/input"
	"github.com/automoto/tiledoor/render"
	"github.com/automoto/tiledoor/scenes"
	"github.com/automoto/tiledoor/systems"
	"github.com/automoto/tiledoor/systems/factory"
	"github.com/automoto/tiledoor/transition"
	"github.com/automoto/tiledoor/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
)

type Game struct {
	loop *game.Loop
}

func NewGame(progress *systems.SavedProgress) *Game {
	if err := fonts.LoadDefaults(); err != nil {
		log.Printf("Warning: Could not load fonts: %v", err)
	}

	levels := assets.MustLoadLevels()
	world := donburi.NewWorld()
	registry := scenes.NewRegistry(world)
	factory.RegisterSnapshotComponents(registry)

	machine := transition.New(registry,
		transition.WithRepositioner(factory.PlayerRepositioner(world)),
		transition.WithListener(systems.AutosaveOnSwitch(registry, progress)),
	)

	renderer := render.NewRenderer(levels, machine)
	for _, scene := range factory.CreateLevelScenes(registry, levels, machine) {
		renderer.AddLevelStages(scene)
	}

	// A new game resumes at the last level reached in a previous run.
	firstLevel := config.C.StartLevel
	if progress.LastLevel != "" && registry.Has(progress.LastLevel) {
		firstLevel = progress.LastLevel
	}

	title := factory.NewTitleScene(registry, levels, machine, firstLevel)
	titleUI := ui.NewTitleUI(func() {
		factory.StartGame(registry, levels, machine, firstLevel)
	})
	titleUI.AddStages(title)
	title.AddStageFunc(scenes.StageRender, renderer.DrawFade)

	factory.CreatePlayer(world, 0, 0)

	g := &Game{
		loop: game.NewLoop(registry, machine, game.InputFunc(input.Poll)),
	}

	if config.Debug.SkipMenu {
		id := config.Debug.Level
		if id == "" {
			id = firstLevel
		}
		level, ok := levels.Level(id)
		if !ok {
			log.Fatalf("Unknown level %q (have %v)", id, levels.IDs())
		}
		// Place the player first so the scene's activation snaps the camera
		// onto the spawn point.
		factory.PlayerRepositioner(world)(factory.SpawnPoint(level))
		registry.MustSwitchTo(level.ID, false)
	} else {
		registry.MustSwitchTo(config.TitleScene, false)
	}

	return g
}

func (g *Game) Update() error {
	g.loop.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.loop.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	level := flag.String("level", "", "Level to start in (implies -skipmenu)")
	skipMenu := flag.Bool("skipmenu", config.Debug.SkipMenu, "Skip the title screen")
	scale := flag.Int("scale", 0, "Window scale factor")
	debug := flag.Bool("debug", config.Debug.ShowHUD, "Draw the debug HUD")
	flag.Parse()

	config.Debug.Level = *level
	config.Debug.SkipMenu = *skipMenu || *level != ""
	config.Debug.ShowHUD = *debug

	// Initialize persistence and load saved progress
	_ = systems.InitPersistence(config.C.AppName)
	progress, err := systems.LoadProgress()
	if err != nil || progress == nil {
		progress = &systems.SavedProgress{}
	}

	windowScale := config.Window.DefaultScale
	if slices.Contains(config.Window.Scales, progress.Scale) {
		windowScale = progress.Scale
	}
	if *scale > 0 {
		windowScale = *scale
		if progress.Scale != windowScale {
			progress.Scale = windowScale
			_ = systems.SaveProgress(progress)
		}
	}

	ebiten.SetTPS(config.C.TPS)
	ebiten.SetWindowTitle(config.Window.Title)
	ebiten.SetWindowSize(config.C.Width*windowScale, config.C.Height*windowScale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	if err := ebiten.RunGame(NewGame(progress)); err != nil {
		log.Fatal(err)
	}
}

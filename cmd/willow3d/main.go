// Command willow3d opens a window showing one of the demo assemblies.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/phanxgames/willow3d"
	"github.com/phanxgames/willow3d/ecs"
	"github.com/phanxgames/willow3d/scenes"
	"github.com/phanxgames/willow3d/tunables"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: willow3d [flags]\n\nAssemblies: %s\n\n", strings.Join(scenes.Names(), ", "))
		flag.PrintDefaults()
	}
	flag.Parse()

	var w io.Writer = os.Stderr
	if *logFileFlag != "" {
		w = &lumberjack.Logger{
			Filename:   *logFileFlag,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		}
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelFlag.value}))
	slog.SetDefault(logger)
	willow3d.SetLogger(logger)

	if err := run(logger); err != nil {
		logger.Error("willow3d failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	assembly, err := scenes.ByName(*sceneFlag)
	if err != nil {
		return err
	}
	panel, err := tunables.New(scenes.PanelParams()...)
	if err != nil {
		return err
	}
	panel.SetLogger(logger.With("component", "tunables"))

	// The watcher lives as long as the window.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *panelFlag != "" {
		if err := panel.Load(*panelFlag); err != nil {
			return err
		}
		go func() {
			if err := panel.Watch(ctx, *panelFlag); err != nil {
				logger.Error("Preset watcher stopped", "error", err)
			}
		}()
	}

	scene := willow3d.NewScene()
	scene.ClearColor = willow3d.Color{R: 0.08, G: 0.08, B: 0.1, A: 1}
	scene.SetDebugMode(*debugFlag)

	built, err := scenes.Build(assembly, scene, panel)
	if err != nil {
		return err
	}
	if assembly.Panel != nil {
		scene.AddOverlay(willow3d.NewPanelOverlay(panel))
	}

	world := donburi.NewWorld()
	scene.SetEntityStore(ecs.NewDonburiStore(world))
	tracker := ecs.NewTracker(world)
	for _, obj := range built.Objects {
		tracker.Bind(obj.Node)
	}
	ecs.InteractionEventType.Subscribe(world, func(_ donburi.World, ev willow3d.InteractionEvent) {
		logger.Debug("Interaction", "event", ev.Type, "entity", ev.EntityID, "x", ev.ScreenX, "y", ev.ScreenY)
	})
	scene.SetUpdateFunc(func(willow3d.FrameContext) {
		events.ProcessAllEvents(world)
	})

	cfg := willow3d.RunConfig{
		Title:   "willow3d - " + assembly.Name,
		Width:   *widthFlag,
		Height:  *heightFlag,
		ShowFPS: *fpsFlag,
	}
	if *scriptFlag != "" {
		data, err := os.ReadFile(*scriptFlag)
		if err != nil {
			return fmt.Errorf("read test script: %w", err)
		}
		runner, err := willow3d.LoadTestScript(data)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
		cfg.ExitOnScriptDone = true
	}

	if err := willow3d.Run(scene, cfg); err != nil {
		return err
	}

	for _, obj := range built.Objects {
		if st, ok := tracker.Lookup(obj.Node); ok {
			logger.Info("Object stats", "name", st.Name, "enters", st.Enters, "leaves", st.Leaves, "clicks", st.Clicks)
		}
	}
	return nil
}

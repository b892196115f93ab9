// Copyright © 2024 Galvanized Logic Inc.

// Package main is physdemo, a headless runner for the deterministic
// physics core: it loads a yaml SceneConfig, steps a physics.World the
// configured number of times, and prints one json stats line per step
// to stdout. It plays the same role the teacher pack's eg command
// plays for vu (a runnable demonstration/smoke-test harness), minus
// any rendering: physdemo [scene.yaml].
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gazed/physcore/physics"
)

// builtinScenes names the scenarios spec §8 describes, used when
// physdemo's argument is one of these names instead of a scene file
// path. Invoked without an argument, physdemo runs free_fall; usage
// lists these names only when the scene cannot be loaded.
var builtinScenes = map[string]string{
	"free_fall": freeFallScene,
	"stacked":   stackedSpheresScene,
	"rope":      ropeChainScene,
	"dam_break": damBreakScene,
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	data, name, err := sceneBytes(os.Args)
	if err != nil {
		log.Error().Err(err).Msg("physdemo: could not load scene")
		usage()
		os.Exit(1)
	}

	cfg, err := loadScene(data)
	if err != nil {
		log.Error().Err(err).Msg("physdemo: could not parse scene")
		os.Exit(1)
	}
	if cfg.Name == "" {
		cfg.Name = name
	}

	w := physics.NewWorld()
	if err := cfg.populate(w); err != nil {
		log.Error().Err(err).Msg("physdemo: could not populate world")
		os.Exit(1)
	}

	log.Info().Str("scene", cfg.Name).Int("steps", cfg.Steps).Msg("physdemo: starting")

	enc := json.NewEncoder(os.Stdout)
	for i := 0; i < cfg.Steps; i++ {
		w.Step()
		stats := w.StatsSnapshot()
		if err := enc.Encode(stats); err != nil {
			log.Error().Err(err).Msg("physdemo: could not encode stats")
			os.Exit(1)
		}
		for _, ev := range w.DrainEvents() {
			log.Debug().Uint8("kind", uint8(ev.Kind)).Msg("physdemo: event")
		}
	}
}

// sceneBytes resolves the scene source: a file path argument, a
// builtin scene name, or (no args) the default free_fall scene.
func sceneBytes(args []string) (data []byte, name string, err error) {
	if len(args) < 2 {
		return []byte(freeFallScene), "free_fall", nil
	}
	arg := args[1]
	if scene, ok := builtinScenes[arg]; ok {
		return []byte(scene), arg, nil
	}
	data, err = os.ReadFile(arg)
	if err != nil {
		return nil, "", fmt.Errorf("sceneBytes: %w", err)
	}
	return data, arg, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: physdemo [scene.yaml | builtin name]\n")
	fmt.Fprintf(os.Stderr, "Builtin scenes are:\n")
	for name := range builtinScenes {
		fmt.Fprintf(os.Stderr, "   %s\n", name)
	}
}

//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"sandsim/internal/app"
	"sandsim/internal/element"
	"sandsim/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	reg, err := element.LoadElements(cfg.ElementsPath)
	if err != nil {
		log.Fatalf("sandsim: %v", err)
	}
	settings, err := element.LoadSettingsFile(cfg.SettingsPath)
	if err != nil {
		log.Fatalf("sandsim: %v", err)
	}

	eng := engine.New(settings, reg, cfg.Seed)
	game := app.New(eng, cfg.Scale)

	ebiten.SetWindowTitle("sandsim")
	ebiten.SetWindowSize(eng.Width()*cfg.Scale, eng.Height()*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// Package main is the entry point for the LED tape light effect
// engine.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/tapelight/ledengine/internal/config"
	"github.com/tapelight/ledengine/internal/engine"
	"github.com/tapelight/ledengine/internal/events"
	"github.com/tapelight/ledengine/internal/frameserver"
	"github.com/tapelight/ledengine/internal/model"
	"github.com/tapelight/ledengine/internal/osc"
	"github.com/tapelight/ledengine/internal/persistence"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
)

func main() {
	cmd := &cli.Command{
		Name:  "ledengine",
		Usage: "real-time LED tape light effect engine",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "fps", Value: 60, Usage: "render tick rate"},
			&cli.IntFlag{Name: "led-count", Value: 225, Usage: "LED strip length"},
			&cli.StringFlag{Name: "osc-ip", Value: "127.0.0.1", Usage: "OSC bind address"},
			&cli.IntFlag{Name: "osc-port", Value: 5005, Usage: "OSC bind port"},
			&cli.StringFlag{Name: "config-file", Usage: "load a scene JSON document at startup"},
			&cli.BoolFlag{Name: "no-gui", Usage: "headless: run renderer and OSC only"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("ledengine: %v", err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	// CLI flags win over the environment.
	if cmd.IsSet("fps") {
		cfg.FPS = int(cmd.Int("fps"))
	}
	if cmd.IsSet("led-count") {
		cfg.LEDCount = int(cmd.Int("led-count"))
	}
	if cmd.IsSet("osc-ip") {
		cfg.OSCBindAddr = cmd.String("osc-ip")
	}
	if cmd.IsSet("osc-port") {
		cfg.OSCPort = int(cmd.Int("osc-port"))
	}
	if cmd.IsSet("config-file") {
		cfg.ConfigFile = cmd.String("config-file")
	}
	if cmd.IsSet("no-gui") {
		cfg.Headless = cmd.Bool("no-gui")
	}

	printBanner(cfg)

	scene, err := loadOrNewScene(cfg)
	if err != nil {
		log.Printf("ledengine: config load failure: %v", err)
		os.Exit(1)
	}

	bus := events.New()
	renderer := engine.NewRenderer(scene, bus)
	clock := engine.NewClock(cfg.FPS, func(dt float64) { renderer.Tick(dt) })

	oscServer, err := osc.NewServer(scene, bus, cfg.OSCBindAddr, cfg.OSCPort, cfg.OSCWorkers)
	if err != nil {
		log.Printf("ledengine: OSC bind failure: %v", err)
		os.Exit(2)
	}

	var frameSrv *frameserver.Server
	if !cfg.Headless {
		frameSrv = frameserver.NewServer(frameserver.Config{
			Addr:       cfg.FrameServerAddr,
			CORSOrigin: cfg.CORSOrigin,
		}, scene, bus)
		frameSrv.Start()
	}

	oscServer.Start()
	clock.Start()
	log.Printf("🎞️ engine running: %d fps, %d LEDs, OSC on %s:%d\n", cfg.FPS, cfg.LEDCount, cfg.OSCBindAddr, cfg.OSCPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	clock.Stop()
	oscServer.Stop()
	if frameSrv != nil {
		if err := frameSrv.Stop(); err != nil {
			log.Printf("ledengine: frameserver shutdown: %v", err)
		}
	}

	log.Println("engine stopped")
	return nil
}

func loadOrNewScene(cfg *config.Config) (*model.Scene, error) {
	if cfg.ConfigFile == "" {
		scene := model.NewScene(1)
		scene.AddEffect(model.NewEffect(1, cfg.LEDCount, cfg.FPS))
		return scene, nil
	}
	return persistence.Load(cfg.ConfigFile)
}

func printBanner(cfg *config.Config) {
	fmt.Println("============================================")
	fmt.Println("  LED Tape Light Effect Engine")
	fmt.Printf("  Version: %s\n", Version)
	fmt.Printf("  Build:   %s\n", BuildTime)
	fmt.Println("============================================")
	fmt.Printf("  Environment: %s\n", cfg.Env)
	fmt.Printf("  FPS:         %d\n", cfg.FPS)
	fmt.Printf("  LED count:   %d\n", cfg.LEDCount)
	fmt.Printf("  OSC:         %s:%d\n", cfg.OSCBindAddr, cfg.OSCPort)
	fmt.Printf("  Headless:    %v\n", cfg.Headless)
	fmt.Println("============================================")
}

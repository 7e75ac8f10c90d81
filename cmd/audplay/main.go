// SPDX-License-Identifier: EPL-2.0

// Command audplay plays an audio file through the default output
// device, optionally keeping a remote transport in sync.
//
// Usage:
//
//	audplay [-config config.yaml] [-seek seconds] file
//
// Playback loops until interrupted; SIGINT and SIGTERM trigger a 50 ms
// fade-out before exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/oto"

	"github.com/ik5/audplay"
	"github.com/ik5/audplay/bridge"
	"github.com/ik5/audplay/engine"
	"github.com/ik5/audplay/pcm"
	"github.com/ik5/audplay/utils"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "path to YAML config")
	seek := flag.Float64("seek", 0, "start position in seconds")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: %s [-config config.yaml] [-seek seconds] file", os.Args[0])
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := audplay.Open(flag.Arg(0), audplay.Options{
		OutputRate: cfg.OutputRate,
		Mono:       cfg.Mono,
	})
	if err != nil {
		return err
	}
	defer eng.Close()

	eng.SetGain(cfg.Gain)

	if err := attachBridge(eng, cfg.Bridge); err != nil {
		return err
	}

	if err := eng.Start(); err != nil {
		return fmt.Errorf("pre-fill: %w", err)
	}

	if *seek > 0 {
		eng.Seek(*seek)
	}

	info := eng.Info()
	log.Printf("playing %s: %.0f Hz, %d ch, %.1fs (output %.0f Hz)",
		flag.Arg(0), info.SampleRate, info.Channels, info.Duration(), cfg.OutputRate)

	eng.Play()

	renderErr := make(chan error, 1)
	renderStop := make(chan struct{})
	go func() {
		renderErr <- render(eng, cfg, info.Channels, renderStop)
	}()

	select {
	case err := <-renderErr:
		return err
	case <-ctx.Done():
	}

	log.Print("fading out")

	// The render goroutine keeps feeding the device while the fade
	// supervisor ramps the multiplier down.
	fadeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := eng.Shutdown(fadeCtx); err != nil {
		log.Printf("fade-out cut short: %v", err)
	}

	close(renderStop)
	return <-renderErr
}

func attachBridge(eng *engine.Engine, cfg BridgeConfig) error {
	switch cfg.Mode {
	case "", "none":
		return nil
	case "master":
		return eng.AttachBridge(bridge.NewTimebaseMaster(eng))
	case "broadcast":
		b, err := bridge.NewBroadcaster(cfg.Addr, eng)
		if err != nil {
			return fmt.Errorf("bridge: %w", err)
		}
		log.Printf("broadcasting transport to %s", cfg.Addr)
		return eng.AttachBridge(b)
	default:
		return fmt.Errorf("unknown bridge mode %q", cfg.Mode)
	}
}

// render drives the engine's block path into the oto device until stop
// closes. oto's writer blocks for pacing, so the loop needs no timer.
func render(eng *engine.Engine, cfg *Config, channels int, stop <-chan struct{}) error {
	otoCtx, err := oto.NewContext(int(cfg.OutputRate), channels, 2, cfg.BlockFrames*channels*4)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	defer otoCtx.Close()

	player := otoCtx.NewPlayer()
	defer player.Close()

	block := pcm.Interleaved{
		Data:     make([]float32, cfg.BlockFrames*channels),
		Frames:   cfg.BlockFrames,
		Channels: channels,
	}
	bytes := make([]byte, len(block.Data)*2)

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		eng.ProcessBlock(block)
		n := utils.Float32ToPCM16Bytes(bytes, block.Data)

		if _, err := player.Write(bytes[:n]); err != nil {
			return fmt.Errorf("writing to device: %w", err)
		}
	}
}

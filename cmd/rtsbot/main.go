// Command rtsbot runs the strategy bot over a stream of game
// snapshots: one JSON PlayerView per input line, one JSON action set
// per output line.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/yourusername/rtsengine/internal/config"
	"github.com/yourusername/rtsengine/pkg/bot"
	"github.com/yourusername/rtsengine/pkg/game"
	"github.com/yourusername/rtsengine/pkg/telemetry"
)

const version = "0.1.0"

func main() {
	configFile := flag.String("config", "", "Path to TOML configuration (defaults apply when empty)")
	weightsFile := flag.String("weights", "", "Path to YAML field weights (defaults apply when empty)")
	inputFile := flag.String("input", "", "Snapshot stream to read (stdin when empty)")
	outputFile := flag.String("output", "", "Action stream to write (stdout when empty)")
	debug := flag.Bool("debug", false, "Verbose development logging")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("rtsbot v%s\n", version)
		os.Exit(0)
	}

	log, err := config.NewLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	weights, err := config.LoadWeights(*weightsFile)
	if err != nil {
		log.Fatal("load weights", zap.Error(err))
	}

	in := os.Stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			log.Fatal("open input", zap.Error(err))
		}
		defer f.Close()
		in = f
	}
	out := os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			log.Fatal("create output", zap.Error(err))
		}
		defer f.Close()
		out = f
	}

	var hub *telemetry.Hub
	if cfg.Telemetry.Enabled {
		hub = telemetry.NewHub(log)
		defer hub.Close()
		mux := http.NewServeMux()
		mux.HandleFunc("/watch", hub.Handler)
		go func() {
			log.Info("telemetry listening", zap.String("addr", cfg.Telemetry.Addr))
			if err := http.ListenAndServe(cfg.Telemetry.Addr, mux); err != nil {
				log.Error("telemetry server", zap.Error(err))
			}
		}()
	}

	log.Info("rtsbot starting", zap.String("version", version))

	b := bot.New(cfg, weights, log)
	if err := run(b, hub, in, out); err != nil {
		log.Fatal("run", zap.Error(err))
	}
	b.Stats().Report()
}

// run drives the tick loop: decode a snapshot, plan, encode the orders.
func run(b *bot.Bot, hub *telemetry.Hub, in *os.File, out *os.File) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 1<<20), 16<<20)
	writer := bufio.NewWriter(out)
	defer writer.Flush()
	enc := json.NewEncoder(writer)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var view game.PlayerView
		if err := json.Unmarshal(line, &view); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
		actions := b.Tick(&view)
		if err := enc.Encode(actions); err != nil {
			return fmt.Errorf("encode actions: %w", err)
		}
		if err := writer.Flush(); err != nil {
			return err
		}
		if hub != nil {
			stats := b.Stats()
			hub.Broadcast(telemetry.Frame{
				Type: "tick",
				Tick: view.CurrentTick,
				Payload: map[string]any{
					"actions":            actions,
					"plan_speed":         stats.PlanSpeed(),
					"entity_transitions": stats.EntityTransitions,
					"battle_transitions": stats.BattleTransitions,
					"build_transitions":  stats.BuildTransitions,
				},
			})
		}
	}
	return scanner.Err()
}

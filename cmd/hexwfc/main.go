// Command hexwfc generates a hexagonal tile map from a catalog.
//
//	hexwfc -catalog tiles.yaml -seed 42
//	hexwfc -config hexwfc.yaml
//
// With output.listen set, change events are streamed to websocket clients on
// /events and the process keeps serving until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RocketPrinter/HexagonalWFC/config"
	"github.com/RocketPrinter/HexagonalWFC/eventlog"
	"github.com/RocketPrinter/HexagonalWFC/runindex"
	"github.com/RocketPrinter/HexagonalWFC/stream"
	"github.com/RocketPrinter/HexagonalWFC/tileset"
	"github.com/RocketPrinter/HexagonalWFC/wfc"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "hexwfc:", err)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("hexwfc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file (optional)")
	catalogPath := fs.String("catalog", "", "tile catalog YAML (overrides config)")
	seed := fs.Int64("seed", 0, "random seed, 0 = pick one (overrides config)")
	size := fs.Int("size", 0, "odd grid size (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Grid.Seed = *seed
		case "size":
			cfg.Grid.Size = *size
		case "catalog":
			cfg.Catalog = *catalogPath
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Catalog == "" {
		return errors.New("no catalog: pass -catalog or set catalog in the config")
	}

	logger := cfg.Logger(stderr)
	cat, err := tileset.LoadFile(cfg.Catalog)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "path", cfg.Catalog, "bases", cat.Bases(), "variants", cat.Len(), "digest", cat.Digest())

	opts := append(cfg.EngineOptions(), wfc.WithLogger(logger))

	if cfg.Output.EventDir != "" {
		rec, err := eventlog.NewRecorder(cfg.Output.EventDir, "run-"+time.Now().UTC().Format("20060102-150405.000"))
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Error("event log", "path", rec.Path(), "err", err)
				return
			}
			logger.Info("event log written", "path", rec.Path(), "events", rec.Events())
		}()
		opts = append(opts, wfc.WithListener(rec))
	}

	var hub *stream.Hub
	if cfg.Output.Listen != "" {
		hub = stream.NewHub(logger)
		shutdown, err := serve(cfg.Output.Listen, hub, logger)
		if err != nil {
			return err
		}
		defer shutdown()
		opts = append(opts, wfc.WithListener(hub))
	}

	eng, err := wfc.New(cat, cfg.Grid.Size, opts...)
	if err != nil {
		return err
	}
	logger.Info("run starting",
		"seed", eng.Seed(), "size", eng.Size(), "cells", eng.Cells(),
		"strict", eng.Strict(), "pacing", eng.Pacing().Mode.String())

	start := time.Now()
	runErr := drive(ctx, eng, cfg)
	elapsed := time.Since(start)

	stats := eng.Stats()
	roads := eng.Networks(tileset.Road)
	longest := 0
	for _, n := range roads {
		longest = max(longest, len(n))
	}
	logger.Info("run finished",
		"state", eng.State().String(), "elapsed", elapsed,
		"collapses", stats.Collapses, "propagations", stats.Propagations,
		"contradictions", len(eng.Contradictions()),
		"road_networks", len(roads), "longest_road", longest,
		"seed", eng.Seed())

	if cfg.Output.Index != "" {
		if err := record(cfg.Output.Index, runindex.FromEngine(eng, elapsed)); err != nil {
			logger.Error("run index", "err", err)
		}
	}

	if hub != nil && runErr == nil {
		logger.Info("serving until interrupted", "addr", cfg.Output.Listen)
		<-ctx.Done()
	}
	return runErr
}

// drive runs the engine with the configured pacing.
func drive(ctx context.Context, eng *wfc.Engine, cfg *config.Config) error {
	if eng.Pacing().Mode == wfc.PaceDrain {
		return eng.Run(ctx)
	}
	ticker := time.NewTicker(cfg.Pacing.Interval)
	defer ticker.Stop()
	for !eng.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := eng.Tick(); err != nil {
				return err
			}
		}
	}
	if eng.Strict() && len(eng.Contradictions()) > 0 {
		return fmt.Errorf("%d cells: %w", len(eng.Contradictions()), wfc.ErrContradiction)
	}
	return nil
}

func record(path string, r runindex.Run) error {
	idx, err := runindex.Open(path)
	if err != nil {
		return err
	}
	defer idx.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = idx.Record(ctx, r)
	return err
}

// serve starts the event stream server and returns its shutdown func.
func serve(addr string, hub *stream.Hub, logger *slog.Logger) (func(), error) {
	mux := http.NewServeMux()
	mux.Handle("/events", hub.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("stream listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return nil, fmt.Errorf("stream: %w", err)
	case <-time.After(50 * time.Millisecond):
	}

	return func() {
		hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("stream shutdown", "err", err)
		}
	}, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"procsim/internal/eventlog"
	"procsim/internal/report"
	"procsim/internal/sched"
	"procsim/internal/sim"
	"procsim/internal/tracing"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: procsim [-config file] param_file")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	// Read the configuration
	cfg, err := sched.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, flag.Arg(0), logger); err != nil {
		logger.Error("simulation aborted", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg sched.Config, path string, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	runID := uuid.NewString()
	opts := []sim.Option{sim.WithRunID(runID), sim.WithLogger(logger)}

	var text *eventlog.TextLog
	if cfg.EventLog {
		text = eventlog.NewTextLog(os.Stdout)
		opts = append(opts, sim.WithObserver(text))
	}
	if cfg.EventCSV != "" {
		csvLog, err := eventlog.CreateCSVLog(cfg.EventCSV, runID)
		if err != nil {
			return fmt.Errorf("event csv: %w", err)
		}
		defer func() {
			if err := csvLog.Close(); err != nil {
				logger.Warn("event csv", "err", err)
			}
		}()
		opts = append(opts, sim.WithObserver(csvLog))
	}
	if cfg.TraceFile != "" {
		tracer, err := tracing.Open(cfg.TraceFile, "procsim", runID)
		if err != nil {
			return fmt.Errorf("trace file: %w", err)
		}
		defer func() {
			if err := tracer.Shutdown(context.Background()); err != nil {
				logger.Warn("trace shutdown", "err", err)
			}
		}()
		opts = append(opts, sim.WithTracer(tracer))
	}

	res, err := sim.Run(ctx, cfg, f, opts...)
	if err != nil {
		return err
	}
	if text != nil && text.Err() != nil {
		return fmt.Errorf("event log: %w", text.Err())
	}
	if len(res.Finished) == 0 {
		logger.Warn("no process terminated during the run")
	}

	if cfg.Table {
		report.Table(os.Stdout, res)
		return nil
	}
	return report.Write(os.Stdout, res)
}

func newLogger(cfg sched.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, hopts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, hopts))
}

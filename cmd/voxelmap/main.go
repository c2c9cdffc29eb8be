package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/df-mc/voxelmap/mapper"
	"github.com/df-mc/voxelmap/mapper/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	path := flag.String("config", "config.toml", "path of the TOML or YAML configuration file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, *path, log); err != nil {
		log.Error("Map render failed.", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, log *slog.Logger) error {
	uc, err := mapper.LoadUserConfig(path)
	if err != nil {
		return err
	}
	conf, err := uc.Config(log)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	if conf.Metrics, err = render.NewMetrics(reg); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	if uc.Metrics.Address != "" {
		srv := &http.Server{Addr: uc.Metrics.Address, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics server stopped.", "err", err)
			}
		}()
		defer srv.Close()
		log.Info("Serving metrics.", "addr", uc.Metrics.Address)
	}

	m, err := conf.New()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Generate(); err != nil {
		return err
	}
	if _, err := m.Render(ctx); err != nil {
		return err
	}
	if uc.Output.Overview == "" {
		return nil
	}
	return writeOverview(m, uc.Output.Overview, log)
}

func writeOverview(m *mapper.Map, path string, log *slog.Logger) error {
	img, err := m.Overview()
	if err != nil {
		return fmt.Errorf("build overview: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create overview: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode overview: %w", err)
	}
	log.Info("Wrote overview.", "file", path, "size", img.Bounds().Size())
	return f.Close()
}

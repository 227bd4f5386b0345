// Command ccmdump seeds an in-memory store, mirrors it and prints the
// resulting graph as XML.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cyp0633/libccm/config"
	"github.com/cyp0633/libccm/export"
	"github.com/cyp0633/libccm/manager"
	"github.com/cyp0633/libccm/observable"
	"github.com/cyp0633/libccm/resource"
	"github.com/cyp0633/libccm/store/memory"
)

type flagConfig struct {
	configPath string
	search     string
	icsPath    string
	demo       bool
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", flags.configPath, err)
		os.Exit(1)
	}
	logger := conf.Logger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, conf, flags); err != nil {
		logger.Error("ccmdump failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, conf *config.Config, flags flagConfig) error {
	s := memory.New()
	defer s.Close()
	ids := s.Seed(conf.Seed)
	logger.Info("seeded store", "resources", len(ids))

	m, err := manager.New(s,
		manager.WithLogger(logger),
		manager.WithContext(ctx))
	if err != nil {
		return err
	}
	defer m.Close()

	select {
	case <-m.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := m.Err(); err != nil {
		return err
	}

	if flags.demo {
		if err := demo(ctx, logger, s, m); err != nil {
			return err
		}
	}

	if err := export.Write(os.Stdout, export.Graph(m.Collections().Items())); err != nil {
		return err
	}

	if flags.search != "" {
		results, err := m.Search(ctx, flags.search)
		if err != nil {
			return err
		}
		if err := export.Write(os.Stdout, export.SearchResults(flags.search, results.Items())); err != nil {
			return err
		}
	}

	if flags.icsPath != "" {
		f, err := os.Create(flags.icsPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", flags.icsPath, err)
		}
		defer f.Close()
		if err := s.WriteICS(f); err != nil {
			return err
		}
		logger.Info("wrote iCalendar export", "path", flags.icsPath)
	}

	return nil
}

// demo creates, renames and deletes a calendar in the first collection
// through the manager and logs the deltas seen on its calendar list.
func demo(ctx context.Context, logger *slog.Logger, s *memory.Store, m *manager.Manager) error {
	coll, ok := m.Collections().At(0)
	if !ok {
		logger.Warn("no collection to run the demo in")
		return nil
	}

	cancel := coll.Calendars().Observe(func(d observable.Delta) {
		logger.Info("calendar list changed",
			"collection", coll.Name(),
			"position", d.Position,
			"removed", d.Removed,
			"added", d.Added)
	})
	defer cancel()

	if err := m.CreateCalendar(ctx, coll.ID(), "Scratch", resource.RGB(0x34, 0xc7, 0x59)); err != nil {
		return err
	}
	s.Flush()

	scratch, ok := coll.Calendars().At(coll.Calendars().Len() - 1)
	if !ok {
		return fmt.Errorf("created calendar did not appear in %s", coll.Name())
	}
	if err := m.UpdateCalendar(ctx, scratch.ID(), "Scratch (renamed)", scratch.Color()); err != nil {
		return err
	}
	s.Flush()
	logger.Info("calendar updated in place", "id", scratch.ID(), "name", scratch.Name())

	if err := m.DeleteCalendar(ctx, scratch.ID()); err != nil {
		return err
	}
	s.Flush()
	return nil
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "ccmdump.yaml", "Path to config file (created with defaults if missing)")
	flag.StringVar(&cfg.search, "search", "", "Full-text event search to run after loading")
	flag.StringVar(&cfg.icsPath, "ics", "", "Write every calendar as iCalendar to this path")
	flag.BoolVar(&cfg.demo, "demo", false, "Create, rename and delete a scratch calendar before printing")

	flag.Parse()

	return cfg
}

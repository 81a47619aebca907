package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/rankbar/internal/config"
	"github.com/mmcdole/rankbar/internal/domain"
	"github.com/mmcdole/rankbar/internal/log"
	"github.com/mmcdole/rankbar/internal/metrics"
	"github.com/mmcdole/rankbar/internal/rank"
	"github.com/mmcdole/rankbar/internal/schedule"
	"github.com/mmcdole/rankbar/internal/source"
	"github.com/mmcdole/rankbar/internal/store"
	"github.com/mmcdole/rankbar/internal/tui"
	"github.com/mmcdole/rankbar/internal/widget"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	source   string
	headless bool
	once     bool
}

func main() {
	var (
		showVersion bool
		opts        options
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.source, "source", "", "ranking source (tiobe, pypl)")
	flag.BoolVar(&opts.headless, "headless", false, "print each rank on its own line instead of drawing the indicator")
	flag.BoolVar(&opts.once, "once", false, "print the current rank and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("rankbar %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.source != "" {
		cfg.Source.Name = opts.source
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting rankbar", "version", Version, "source", cfg.Source.Name)

	src, err := source.Lookup(cfg.Source.Name)
	if err != nil {
		return err
	}

	storePath, err := config.ExpandHome(cfg.Store.Path)
	if err != nil {
		return err
	}
	prefs, err := store.NewPrefsStore(storePath)
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}
	defer prefs.Close()

	if err := source.Activate(prefs, src); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	fetcher := rank.NewFetcher(src, prefs, logger,
		rank.WithTimeout(cfg.HTTP.Timeout),
		rank.WithUserAgent("rankbar/"+Version),
		rank.WithObserver(m),
	)

	if opts.once {
		text, err := fetcher.DisplayText(ctx)
		if err != nil {
			return err
		}
		fmt.Println(widget.Printable(text, cfg.UI.ASCIIArrow))
		return nil
	}

	if opts.headless || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runHeadless(ctx, fetcher, cfg, logger)
	}
	return runTUI(ctx, fetcher, src, cfg, logger)
}

// runHeadless prints every refresh to stdout until interrupted
func runHeadless(ctx context.Context, fetcher *rank.Fetcher, cfg *config.Config, logger *slog.Logger) error {
	w := widget.New(fetcher, schedule.TimerScheduler{}, widget.NewLineRenderer(os.Stdout, cfg.UI.ASCIIArrow),
		widget.DefaultDelays(), logger)
	w.Start(ctx)
	defer w.Stop()

	logger.Info("running headless")
	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// runTUI draws the indicator until the user quits
func runTUI(ctx context.Context, fetcher *rank.Fetcher, src domain.Source, cfg *config.Config, logger *slog.Logger) error {
	p := tea.NewProgram(
		tui.NewModel(src.Title, cfg.UI.ASCIIArrow),
		tea.WithContext(ctx),
	)

	w := widget.New(fetcher, schedule.TimerScheduler{}, tui.NewProgramRenderer(p), widget.DefaultDelays(), logger)
	w.Start(ctx)
	defer w.Stop()

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

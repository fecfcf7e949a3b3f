package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rook-computer/diceroller/internal/app"
	"github.com/rook-computer/diceroller/internal/app/screens"
	"github.com/rook-computer/diceroller/internal/buttons"
	"github.com/rook-computer/diceroller/internal/config"
	"github.com/rook-computer/diceroller/internal/logging"
	"github.com/rook-computer/diceroller/internal/render"
	"github.com/rook-computer/diceroller/internal/state"
	"github.com/rook-computer/diceroller/internal/system"
	"github.com/rook-computer/diceroller/internal/web"
)

func main() {
	configPath := flag.String("config", "", "YAML config file; DICEROLLER_* environment variables override it")
	debug := flag.Bool("debug", false, "enable debug logging")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via DICEROLLER_STDIO_LOG")
	seed := flag.Int64("seed", 0, "seed for reproducible rolls (0 uses crypto/rand)")
	listen := flag.String("listen", "", "HTTP remote control address, e.g. :8080 (empty disables it)")
	flag.Parse()

	// Best-effort: keep crash output even when the console is in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("DICEROLLER_STDIO_LOG")
	}
	if err := system.RedirectStdIO(logPath); err != nil {
		fmt.Fprintln(os.Stderr, "stdio log redirect error:", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(2)
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	if *seed != 0 {
		cfg.Roll.Seed = *seed
	}
	if *listen != "" {
		cfg.Web.Listen = *listen
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("diceroller stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore(cfg.Spec())
	ctrl, err := app.NewSession(cfg, store, logger)
	if err != nil {
		return err
	}

	var server web.Server = &web.NoopServer{}
	if serverCfg := web.ServerConfigFrom(cfg.Web); serverCfg.Enabled() {
		shots := render.NewSnapshotter(screens.NewRollScreen(ctrl.Presets()))
		server = web.NewHTTPServer(serverCfg, web.APIV1Deps{
			Session:    ctrl,
			State:      store,
			Screenshot: shots.Render,
		}, logger)
	}

	renderer := render.NewFBRenderer(cfg.Display.Device, cfg.Display.FPS, logger)
	a := app.New(ctrl, store, renderer, server, buttons.NewKeyboard(logger))
	a.Console = system.NewConsole(logger)
	a.Logger = logger.Named("app")

	logger.Info("diceroller starting",
		zap.Stringer("spec", cfg.Spec()),
		zap.Int("history", cfg.History.Size),
		zap.String("listen", cfg.Web.Listen))

	err = a.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

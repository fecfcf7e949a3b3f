package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rook-computer/diceroller/internal/app"
	"github.com/rook-computer/diceroller/internal/app/screens"
	"github.com/rook-computer/diceroller/internal/config"
	"github.com/rook-computer/diceroller/internal/dice"
	"github.com/rook-computer/diceroller/internal/logging"
	"github.com/rook-computer/diceroller/internal/render"
	"github.com/rook-computer/diceroller/internal/session"
	"github.com/rook-computer/diceroller/internal/state"
	"github.com/rook-computer/diceroller/internal/web"
)

const defaultLogFile = "diceroller-sim.log"

func main() {
	configPath := flag.String("config", "", "YAML config file; DICEROLLER_* environment variables override it")
	seed := flag.Int64("seed", 0, "seed for reproducible rolls (0 picks a random seed and shows it)")
	listen := flag.String("listen", "", "also serve the HTTP API, e.g. "+web.DefaultSimulatorListenAddr)
	devMode := flag.Bool("dev", false, "enable permissive CORS on the HTTP API")
	logFile := flag.String("log-file", defaultLogFile, "log file; the terminal belongs to the UI")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(2)
	}
	if *seed != 0 {
		cfg.Roll.Seed = *seed
	}
	if cfg.Roll.Seed == 0 {
		if cfg.Roll.Seed, err = dice.NewSeed(); err != nil {
			fmt.Fprintln(os.Stderr, "seed error:", err)
			os.Exit(2)
		}
	}
	if *listen != "" {
		cfg.Web.Listen = *listen
	}
	if *devMode {
		cfg.Web.Dev = true
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = *logFile
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("simulator stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, "simulator error:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	footer := fmt.Sprintf("[gray]seed %d (replay with --seed %d)[-]", cfg.Roll.Seed, cfg.Roll.Seed)
	serverCfg := web.ServerConfigFrom(cfg.Web)
	if serverCfg.Enabled() {
		footer += fmt.Sprintf("  [gray]api http://%s/api/v1/[-]", displayAddr(serverCfg.ListenAddr))
	}

	ui := newSimUI(ctx, logger.Named("sim"), footer)
	store := state.NewStore(cfg.Spec())
	ctrl, err := app.NewSession(cfg, session.Listeners{store, ui}, logger)
	if err != nil {
		return err
	}
	defer ctrl.Stop()

	actions := app.New(ctrl, store, nil, nil, nil)
	actions.Logger = logger.Named("app")
	ui.bind(actions)

	if serverCfg.Enabled() {
		shots := render.NewSnapshotter(screens.NewRollScreen(ctrl.Presets()))
		server := web.NewHTTPServer(serverCfg, web.APIV1Deps{
			Session:    ctrl,
			State:      store,
			Screenshot: shots.Render,
		}, logger)
		if err := server.Start(ctx); err != nil {
			return err
		}
		defer server.Stop()
	}

	go func() {
		<-ctx.Done()
		ui.app.Stop()
	}()

	logger.Info("simulator starting", zap.Int64("seed", cfg.Roll.Seed), zap.Stringer("spec", cfg.Spec()))
	return ui.run()
}

// displayAddr turns ":8080" into a clickable host:port.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	return addr
}

// samurai-tactics is a terminal application to play Samurai Tactics, a
// two-player abstract strategy game on a 5x6 board.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"samurai-tactics/config"
	"samurai-tactics/engine/session"
	"samurai-tactics/logging"
	"samurai-tactics/telemetry"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	cfg       *config.Config
	logger    = zap.NewNop()
	tracer    = telemetry.NoopTracer()
	shutdown  func(context.Context) error
	flagFocus bool
)

var rootCmd = &cobra.Command{
	Use:   "samurai-tactics",
	Short: "Play Samurai Tactics in the terminal",
	Long: `Samurai Tactics is played by two people sharing one board.

Red moves first. Each side has Samurai, Ronin, a Daimyo and a line of Ninja;
the first player to capture the enemy Daimyo wins.

Run without arguments to open the start menu.`,
	Version:            Version,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(false)
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(true)
	},
}

var movesCmd = &cobra.Command{
	Use:   "moves [move]...",
	Short: "Replay moves on a fresh board and print the result",
	Long: `Applies each move to a new game in order and prints the final board.

Moves use square notation, files a-e and ranks 1-6 with rank 1 being Red's
back rank. Captures may be written with x instead of -.

Example:
  samurai-tactics moves c2-c4 b5-b3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return playMoves(cmd.OutOrStdout(), newSession(), args)
	},
}

func init() {
	rootCmd.SetVersionTemplate("samurai-tactics {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVar(&flagFocus, "focus", false, "Start in focus mode (board only)")
	rootCmd.AddCommand(playCmd, movesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads .env, the config file and environment, then builds the
// logger and, if enabled, the trace exporter.
func setup(cmd *cobra.Command, args []string) error {
	// Not fatal: variables may be set directly.
	_ = godotenv.Load()

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		return err
	}

	logger, err = logging.New(cfg.Log)
	if err != nil {
		return err
	}

	if cfg.Telemetry.Enabled {
		shutdown, err = telemetry.Setup(cmd.Context(), cfg.Telemetry, Version)
		if err != nil {
			logger.Warn("telemetry disabled", zap.Error(err))
		} else {
			tracer = telemetry.Tracer("session")
		}
	}

	logger.Debug("starting", zap.String("version", Version), zap.String("command", cmd.Name()))
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}
	_ = logger.Sync()
	return nil
}

func newSession() *session.Session {
	return session.New(session.WithLogger(logger), session.WithTracer(tracer))
}


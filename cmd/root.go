package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"golang.org/x/xerrors"

	"github.com/coder/memento/cmd/explore"
	"github.com/coder/memento/cmd/replay"
	"github.com/coder/memento/cmd/seq"
	"github.com/coder/memento/internal/config"
	"github.com/coder/memento/internal/version"
	"github.com/coder/memento/lib/logctx"
)

const (
	FlagLogLevel = "log-level"
	FlagNoColor  = "no-color"
)

var rootCmd = &cobra.Command{
	Use:               "memento",
	Short:             "Memento CLI",
	Long:              `Memento - bounded undo/redo history and lazy sequence combinators`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func Execute() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String(FlagLogLevel, "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool(FlagNoColor, false, "Disable colored log output")

	rootCmd.AddCommand(replay.CreateReplayCmd())
	rootCmd.AddCommand(seq.CreateSeqCmd())
	rootCmd.AddCommand(explore.ExploreCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if err := config.BindFlags(cmd, args); err != nil {
		return err
	}
	noColor := viper.GetBool(FlagNoColor) || !term.IsTerminal(int(os.Stderr.Fd()))
	logger, err := newLogger(os.Stderr, viper.GetString(FlagLogLevel), noColor)
	if err != nil {
		return err
	}
	logger = logger.With("session", uuid.NewString())
	cmd.SetContext(logctx.WithLogger(cmd.Context(), logger))
	return nil
}

func newLogger(w io.Writer, level string, noColor bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, xerrors.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})), nil
}

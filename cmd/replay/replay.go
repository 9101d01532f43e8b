package replay

import (
	"context"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/coder/memento/internal/config"
	"github.com/coder/memento/lib/logctx"
	replaylib "github.com/coder/memento/lib/replay"
)

const (
	FlagCapacity = "capacity"
	FlagFormat   = "format"
	FlagStrict   = "strict"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

func CreateReplayCmd() *cobra.Command {
	return newReplayCmd(afero.NewOsFs())
}

func newReplayCmd(fs afero.Fs) *cobra.Command {
	replayCmd := &cobra.Command{
		Use:   "replay <script.yaml|->",
		Short: "Replay a history script",
		Long: `Replay a YAML script of push, rollback, reapply, peek and clear steps
against a bounded history and print the state after every step.
Pass - to read the script from stdin.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: config.BindFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), fs, cmd.InOrStdin(), cmd.OutOrStdout(), args[0])
		},
	}

	replayCmd.Flags().Int(FlagCapacity, 0, "History capacity, overrides the script's capacity when positive")
	replayCmd.Flags().String(FlagFormat, FormatText, "Output format (text, yaml)")
	replayCmd.Flags().Bool(FlagStrict, false, "Stop at the first rollback, reapply or peek that fails")
	return replayCmd
}

func runReplay(ctx context.Context, fs afero.Fs, stdin io.Reader, stdout io.Writer, path string) error {
	logger := logctx.FromOrDiscard(ctx)

	format := viper.GetString(FlagFormat)
	if format != FormatText && format != FormatYAML {
		return xerrors.Errorf("invalid format %q, expected %s or %s", format, FormatText, FormatYAML)
	}

	data, err := readScript(fs, stdin, path)
	if err != nil {
		return err
	}
	script, err := replaylib.Parse(data)
	if err != nil {
		return xerrors.Errorf("failed to load %s: %w", path, err)
	}

	opts := replaylib.Options{
		Capacity: viper.GetInt(FlagCapacity),
		Strict:   viper.GetBool(FlagStrict),
	}
	logger.Info("Replaying script", "path", path, "steps", len(script.Steps), "capacity", replaylib.Capacity(script, opts))
	report, err := replaylib.Run(ctx, script, opts)
	if err != nil {
		return xerrors.Errorf("replay failed: %w", err)
	}

	if format == FormatYAML {
		return report.WriteYAML(stdout)
	}
	return report.WriteText(stdout)
}

func readScript(fs afero.Fs, stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, xerrors.Errorf("failed to read script from stdin: %w", err)
		}
		return data, nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read script: %w", err)
	}
	return data, nil
}

// Package config binds command flags and MEMENTO_* environment variables to
// the global viper instance.
package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

const EnvPrefix = "MEMENTO"

// BindFlags makes the flags of cmd, including inherited persistent flags,
// readable through viper. A flag set on the command line wins over its
// environment variable, which wins over the flag default. It has the
// signature of a cobra PreRunE hook.
func BindFlags(cmd *cobra.Command, _ []string) error {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return xerrors.Errorf("failed to bind flags of %s: %w", cmd.Name(), err)
	}
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every flag name to form its environment variable.
const EnvPrefix = "invapp"

// loadConfig resolves global options from flags, the environment and
// .env files. An explicitly set flag wins over the environment, which wins
// over the flag default.
func loadConfig(cmd *cobra.Command, opts *RootOptions) error {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	opts.Database = v.GetString("db")
	opts.Format = v.GetString("format")
	opts.Verbose = v.GetBool("verbose")
	opts.Metrics = v.GetBool("metrics")
	return nil
}

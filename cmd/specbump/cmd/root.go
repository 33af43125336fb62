package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath string
	verbose    int
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "specbump",
	Short: "Update spec files for new upstream versions",
	Long: `specbump automates the mechanical part of packaging a new upstream
version: it rewrites the version, release and changelog fields of a spec
file and works out where the matching source archive lives, handling the
quirks of SourceForge mirrors, GNOME version directories and the
CPAN/PEAR networks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("specbump %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "specbump.yaml", "path to config file")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase trace detail (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtissier/specbump/internal/engine"
)

var planVersion string

var planCmd = &cobra.Command{
	Use:   "plan <specfile>",
	Short: "Show the source delta and download candidates without touching anything",
	Long: `Computes the same update as 'update' but never writes the spec file or
downloads anything: it prints which sources would be added or dropped,
and the ordered candidate URLs for each addition.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng := newEngine(cfg)
		result, err := eng.Update(cmd.Context(), args[0], engine.UpdateOptions{
			NewVersion: planVersion,
			DryRun:     true,
		})
		if err != nil {
			errorf("%s", err)
			return err
		}

		info("%s would become %s-%s", result.Name, result.FinalVersion, result.FinalRelease)
		for _, added := range result.Added {
			info("  new source: %s", added.URL)
			for i, step := range added.Steps {
				note := ""
				if step.ReencodeRequired {
					note = "  (reencode after download)"
				}
				info("    candidate %d: %s%s", i+1, step.URL, note)
			}
		}
		for _, removed := range result.Removed {
			info("  obsolete source: %s", removed)
		}
		if len(result.Added) == 0 && len(result.Removed) == 0 {
			info("  no source changes")
		}
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&planVersion, "version", "", "new upstream version (empty = rebuild)")

	rootCmd.AddCommand(planCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtissier/specbump/internal/engine"
)

var (
	updateVersion     string
	updateRelease     string
	updateMessages    []string
	updateNoChangelog bool
	updateNoRelease   bool
	updateDryRun      bool
	updateDownload    bool
	updateDownloadDir string
	updateRevision    string
)

var updateCmd = &cobra.Command{
	Use:   "update <specfile>",
	Short: "Rewrite a spec for a new version or rebuild and resolve its sources",
	Long: `Rewrites the version and release fields of the spec, inserts a changelog
entry, and reconciles the declared sources: new source references get an
ordered list of download candidates which is tried until one works.
Without --version the release is incremented for a rebuild.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng := newEngine(cfg)
		result, err := eng.Update(cmd.Context(), args[0], engine.UpdateOptions{
			NewVersion:      updateVersion,
			ExplicitRelease: updateRelease,
			Messages:        updateMessages,
			NoChangelog:     updateNoChangelog,
			NoRelease:       updateNoRelease,
			DryRun:          updateDryRun,
			Download:        updateDownload,
			DownloadDir:     updateDownloadDir,
			Revision:        updateRevision,
		})
		if err != nil {
			errorf("%s", err)
			return err
		}

		info("%s updated to %s-%s", result.Name, result.FinalVersion, result.FinalRelease)
		for _, added := range result.Added {
			info("  new source:      %s", added.URL)
		}
		for _, removed := range result.Removed {
			info("  obsolete source: %s", removed)
		}
		for _, d := range result.Downloaded {
			if d.Reencoded {
				info("  downloaded:      %s (reencoded)", d.Path)
			} else {
				info("  downloaded:      %s", d.Path)
			}
		}
		if updateDryRun {
			info("Dry run — spec file not modified.")
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateVersion, "version", "", "new upstream version (empty = rebuild)")
	updateCmd.Flags().StringVar(&updateRelease, "release", "", "explicit release value, used verbatim")
	updateCmd.Flags().StringArrayVarP(&updateMessages, "message", "m", nil, "changelog message ({version} is substituted)")
	updateCmd.Flags().BoolVar(&updateNoChangelog, "no-changelog", false, "do not insert a changelog entry")
	updateCmd.Flags().BoolVar(&updateNoRelease, "no-release", false, "do not touch the release field")
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "compute everything but leave the spec untouched")
	updateCmd.Flags().BoolVar(&updateDownload, "download", false, "download added sources")
	updateCmd.Flags().StringVar(&updateDownloadDir, "download-dir", "", "directory for downloaded sources (default: spec directory)")
	updateCmd.Flags().StringVar(&updateRevision, "revision", "", "revision for version-controlled sources")

	rootCmd.AddCommand(updateCmd)
}

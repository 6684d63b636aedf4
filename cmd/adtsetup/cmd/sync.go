package cmd

import (
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the declared ADT repositories",
	Long: `Clone or update every repository listed in the ADTS key of the
environment store. A repository that cannot be acquired through any
transport aborts the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := setup()
		if err != nil {
			return err
		}

		store, err := loadStore(settings)
		if err != nil {
			return err
		}

		synced, err := syncRepositories(settings, store, logger)
		if err != nil {
			return err
		}

		logger.Info("Synchronization complete", "repositories", len(synced))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

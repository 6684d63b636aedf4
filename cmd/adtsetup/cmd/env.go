package cmd

import (
	"adtsetup/internal/repository"

	"github.com/spf13/cobra"
)

var envClearToken bool

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Reconcile the environment configuration",
	Long: `Merge the environment template's keys into the local store,
prompting for anything missing or invalid. Safe to re-run; existing valid
values are kept and list keys can be extended.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := setup()
		if err != nil {
			return err
		}

		if envClearToken {
			if err := repository.DeleteToken(); err != nil {
				return err
			}
			logger.Info("GitHub token removed from the OS keyring")
			return nil
		}

		if _, err := reconcileEnv(settings, logger); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	envCmd.Flags().BoolVar(&envClearToken, "clear-token", false,
		"remove the stored GitHub token from the OS keyring and exit")
	rootCmd.AddCommand(envCmd)
}

package cmd

import (
	"adtsetup/internal/readiness"
	"adtsetup/internal/workspace"

	"github.com/spf13/cobra"
)

var runADTDir string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full bootstrap pipeline",
	Long: `Reconcile the environment configuration, synchronize the declared ADT
repositories, select the one to work on, materialize it into the workspace,
and hand off to the editing service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := setup()
		if err != nil {
			return err
		}

		store, err := reconcileEnv(settings, logger)
		if err != nil {
			return err
		}

		synced, err := syncRepositories(settings, store, logger)
		if err != nil {
			return err
		}

		source, err := selectWorkspace(settings, store, synced, runADTDir, logger)
		if err != nil {
			return err
		}

		materializer := workspace.NewMaterializer(settings, logger)
		if _, err := materializer.Materialize(source); err != nil {
			return err
		}

		// The editing service is managed elsewhere; not reaching it is a
		// degraded hand-off, not a failed bootstrap.
		client := readiness.NewClient(settings.ServiceURL, logger)
		ctx := cmd.Context()
		if err := client.WaitHealthy(ctx, settings.ReadinessTimeout()); err != nil {
			logger.Warn("Editing service not reachable, skipping initialization", "error", err)
			return nil
		}
		if err := client.Initialize(ctx); err != nil {
			logger.Warn("Editing service initialization failed", "error", err)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runADTDir, "adt-dir", "",
		"work on a single local ADT directory instead of the synchronized repositories")
	rootCmd.AddCommand(runCmd)
}

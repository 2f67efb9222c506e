package cmd

import (
	"context"
	"log"

	"host-manager/core/config"
	"host-manager/core/logger"
	"host-manager/core/storage"
	"host-manager/feature/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// snapshotCmd archives the working directories once, without the server.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Archive the repository working directories to object storage",
	Long: `Uploads a tar.gz snapshot of the hostvar and inventory working directories
to the configured S3-compatible bucket and exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		client, err := storage.NewClient(cfg.Snapshot)
		if err != nil {
			return err
		}

		svc := snapshot.NewService(client, cfg.Snapshot.Bucket, []snapshot.Target{
			{Name: "hostvars", Path: cfg.Hostvars.Path},
			{Name: "inventory", Path: cfg.Inventory.Path},
		}, logg)

		objects, err := svc.Archive(context.Background())
		if err != nil {
			return err
		}

		logg.Info("Snapshots archived", zap.Strings("objects", objects))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(snapshotCmd)
}

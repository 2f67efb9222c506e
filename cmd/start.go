package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"host-manager/core/config"
	"host-manager/core/gitrepo"
	"host-manager/core/loader"
	"host-manager/core/logger"
	"host-manager/core/middleware/auth"
	"host-manager/core/middleware/rayid"
	"host-manager/core/storage"

	"host-manager/feature/hostvars"
	"host-manager/feature/inventory"
	"host-manager/feature/snapshot"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the host manager server",
	Long:  `Starts the HTTP server, opens the git working directories, and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Open the git working directories (clone on first start)
		ctx := context.Background()
		hostvarRepo, err := gitrepo.Open(ctx, cfg.Hostvars)
		if err != nil {
			logg.Fatal("Failed to open hostvar repository", zap.Error(err))
		}
		inventoryRepo, err := gitrepo.Open(ctx, cfg.Inventory)
		if err != nil {
			logg.Fatal("Failed to open inventory repository", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(hostvars.NewFeature(hostvarRepo, logg))
		mgr.Register(inventory.NewFeature(inventoryRepo, logg))

		// Snapshot archival is optional; it needs object storage credentials.
		if cfg.Snapshot.Enabled {
			store, err := storage.NewClient(cfg.Snapshot)
			if err != nil {
				logg.Fatal("Failed to create snapshot storage client", zap.Error(err))
			}
			targets := []snapshot.Target{
				{Name: "hostvars", Path: cfg.Hostvars.Path},
				{Name: "inventory", Path: cfg.Inventory.Path},
			}
			mgr.Register(snapshot.NewFeature(store, cfg.Snapshot.Bucket, targets, true, logg))
		}

		// Middleware Registration
		// RayID must be first so everything downstream can be traced.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Auth (protect the whole API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

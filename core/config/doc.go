// Package config provides configuration management for host-manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Hostvars: git remote and working directory of the host record repository
//   - Inventory: git remote and working directory of the inventory repository
//   - Snapshot: S3/MinIO credentials and bucket for snapshot archives
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config

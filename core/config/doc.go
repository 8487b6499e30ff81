// Package config provides configuration management for the file integrity tool.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Every key and its default value are declared once, as struct
// tags on the section types.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, API key, request body limit
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: optional MySQL or SQLite connection for the table byte source
//   - Log: logging level and format
//   - Integrity: hashing workers, baseline cache TTL, upload cap, baseline prefix
//
// Environment variables map to keys by replacing dots with underscores,
// so INTEGRITY_WORKERS sets integrity.workers.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Integrity.Workers)
package config

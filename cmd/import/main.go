// Command import bulk-loads the seed CSV files into the database, creating
// the schema first if needed. Run it against the same config as the server.
package main

import (
	"flag"

	"yamdb_backend/internal/app"
	"yamdb_backend/internal/config"
	"yamdb_backend/internal/importer"
	"yamdb_backend/internal/logger"
)

func main() {
	dir := flag.String("dir", "", "directory with the CSV files (default: import.dir from config)")
	flag.Parse()

	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	source := cfg.Import.Dir
	if *dir != "" {
		source = *dir
	}

	db, err := app.OpenDatabase(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	if err := app.Migrate(db); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	logger.Info("starting csv import", "dir", source)
	if err := importer.New(source).Run(db); err != nil {
		logger.Fatal("import failed", "error", err)
	}
	logger.Info("import finished")
}

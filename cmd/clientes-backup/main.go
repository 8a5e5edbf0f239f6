// clientes-backup exports or imports the client collection from the command
// line, producing and consuming the same files the web UI does.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"clientes/internal/cli"
	"clientes/internal/clients"
	"clientes/internal/log"
	"clientes/internal/transfer"
)

func main() {
	var (
		exportDir  = flag.String("export", "", "export all clients into this directory")
		format     = flag.String("format", "json", "export format: json or xlsx")
		importFile = flag.String("import", "", "replace all clients with this JSON file")
		yes        = flag.Bool("yes", false, "skip the confirmation prompt on import")
	)
	flag.Parse()

	logger := cli.SetupLogger().WithComponent(log.ComponentBackup)
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	if (*exportDir == "") == (*importFile == "") {
		fmt.Fprintln(os.Stderr, "usage: clientes-backup -export DIR [-format json|xlsx] | -import FILE [-yes]")
		os.Exit(2)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Failed to resolve timezone", "error", err, "timezone", cfg.Timezone)
		os.Exit(1)
	}

	store := cli.OpenStore(logger, cfg)
	svc := clients.NewClientService(store, loc)
	defer svc.Close()

	ctx := context.Background()
	if *exportDir != "" {
		runExport(ctx, logger, svc, *exportDir, *format)
	} else {
		runImport(ctx, logger, svc, *importFile, *yes)
	}
}

func runExport(ctx context.Context, logger *log.Logger, svc *clients.ClientService, dir, format string) {
	var (
		data     []byte
		filename string
		err      error
	)
	switch format {
	case "json":
		data, filename, err = svc.ExportJSON(ctx)
	case "xlsx":
		data, filename, err = svc.ExportXLSX(ctx)
	default:
		logger.Error("Unknown export format", "format", format)
		os.Exit(2)
	}
	if errors.Is(err, transfer.ErrNothingToExport) {
		logger.Info("Nothing to export, no file written")
		return
	}
	if err != nil {
		logger.Error("Export failed", "error", err)
		os.Exit(1)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("Failed to write export file", "error", err, "path", path)
		os.Exit(1)
	}
	logger.Info("Export written", "path", path)
}

func runImport(ctx context.Context, logger *log.Logger, svc *clients.ClientService, path string, skipPrompt bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to read import file", "error", err, "path", path)
		os.Exit(1)
	}

	if !skipPrompt {
		fmt.Print("This replaces every stored client. Continue? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			logger.Info("Import cancelled")
			return
		}
	}

	count, err := svc.Import(ctx, data)
	if err != nil {
		logger.Error("Import failed", "error", err, "path", path)
		os.Exit(1)
	}
	logger.Info("Import completed", "path", path, "count", count)
}

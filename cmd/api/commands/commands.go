package commands

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kickoff/core/internal/adapters/repository"
	"github.com/kickoff/core/internal/application/services"
	"github.com/kickoff/core/internal/infrastructure/config"
	"github.com/kickoff/core/internal/infrastructure/logger"
	"github.com/kickoff/core/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Kickoff API server",
		Long:  "Start the Kickoff API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewExportCommand creates the export command with one subcommand per format
func NewExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the event calendar",
		Long:  "Export all events to a file (csv, ics or pdf)",
	}

	for _, format := range []string{"csv", "ics", "pdf"} {
		format := format
		cmd := &cobra.Command{
			Use:   format,
			Short: fmt.Sprintf("Export all events as %s", strings.ToUpper(format)),
			Run: func(cmd *cobra.Command, args []string) {
				output, _ := cmd.Flags().GetString("output")
				if output == "" {
					output = "events." + format
				}
				runExport(format, output)
			},
		}
		cmd.Flags().String("output", "", "Output file path (default events."+format+")")
		exportCmd.AddCommand(cmd)
	}

	return exportCmd
}

// NewSettingsCommand creates the settings management command
func NewSettingsCommand() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Settings management commands",
		Long:  "Inspect and manage the persisted user settings",
	}

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSettings()
		},
	})

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Run: func(cmd *cobra.Command, args []string) {
			resetSettings()
		},
	})

	return settingsCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Kickoff version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Kickoff v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	srv, err := server.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting Kickoff API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatalw("Server failed to start", "error", err)
	}
}

// loadEventService wires the event service against the configured events
// file for the one-shot CLI commands.
func loadEventService() (*services.EventService, *logger.Logger, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	storage := repository.NewEventFileStore(cfg.Storage.EventsFile, appLogger)
	events := services.NewEventService(storage, appLogger)
	events.Restore()

	return events, appLogger, cfg
}

func runExport(format, output string) {
	events, appLogger, _ := loadEventService()
	defer appLogger.Sync()

	export := services.NewExportService(appLogger)

	var (
		data []byte
		err  error
	)
	switch format {
	case "csv":
		data, err = export.CSV(events.All())
	case "ics":
		data, err = export.ICS(events.All())
	case "pdf":
		data, err = export.PDF(events.All())
	default:
		log.Fatalf("Unknown export format: %s", format)
	}
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", output, err)
	}

	fmt.Printf("Exported %d events to %s\n", len(events.All()), output)
}

func showSettings() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	storage := repository.NewSettingsFileStore(cfg.Storage.SettingsFile, appLogger)
	settings := services.NewSettingsService(storage, appLogger)

	for key, value := range settings.All() {
		fmt.Printf("%s = %v\n", key, value)
	}
}

func resetSettings() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	storage := repository.NewSettingsFileStore(cfg.Storage.SettingsFile, appLogger)
	settings := services.NewSettingsService(storage, appLogger)

	if err := settings.Reset(); err != nil {
		log.Fatalf("Failed to reset settings: %v", err)
	}

	fmt.Println("Settings restored to defaults")
}

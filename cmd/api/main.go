package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kickoff/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kickoff",
		Short: "Kickoff calendar server",
		Long:  `Kickoff is a personal football calendar: dated events with reminders, thematic daily content and CSV/ICS/PDF exports, backed by flat JSON files.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewSettingsCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gatherly/organizer/internal/config"
)

var setupFlags struct {
	apiURL      string
	geocoderURL string
	token       string
	organizerID string
	dataDir     string
	project     bool
	force       bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the organizer configuration file",
	Long: `Create an organizer configuration file.

By default, creates a global config at ~/.config/organizer/organizer.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&setupFlags.apiURL, "api-url", "", "Backend API base URL (required)")
	setupCmd.Flags().StringVar(&setupFlags.geocoderURL, "geocoder-url", config.DefaultGeocoderURL, "Geocoder base URL")
	setupCmd.Flags().StringVar(&setupFlags.token, "token", "", "API bearer token")
	setupCmd.Flags().StringVar(&setupFlags.organizerID, "organizer-id", "", "Your organizer account id (required)")
	setupCmd.Flags().StringVar(&setupFlags.dataDir, "data-dir", ".organizer", "Directory for receipts and local data")
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	_ = setupCmd.MarkFlagRequired("api-url")
	_ = setupCmd.MarkFlagRequired("organizer-id")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := &config.Config{
		APIBaseURL:  setupFlags.apiURL,
		GeocoderURL: setupFlags.geocoderURL,
		Token:       setupFlags.token,
		OrganizerID: setupFlags.organizerID,
		DataDir:     setupFlags.dataDir,
		LogLevel:    "info",
		LogFile:     "",
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Config written to: %s\n\n", targetPath)
	fmt.Println("Run 'organizer event create' to get started.")
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gatherly/organizer/internal/api"
	"github.com/gatherly/organizer/internal/config"
	"github.com/gatherly/organizer/internal/event"
	"github.com/gatherly/organizer/internal/logger"
	"github.com/gatherly/organizer/internal/tui/eventwizard"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Create, edit, and list your events",
}

var eventCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new event through the wizard",
	RunE:  runEventCreate,
}

var eventEditCmd = &cobra.Command{
	Use:   "edit <event-id>",
	Short: "Edit an existing event through the wizard",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventEdit,
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your events",
	RunE:  runEventList,
}

func init() {
	eventCmd.AddCommand(eventCreateCmd)
	eventCmd.AddCommand(eventEditCmd)
	eventCmd.AddCommand(eventListCmd)
}

// loadClient loads config, validates it, and builds the API client.
func loadClient() (*config.Config, *api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w\n\nRun 'organizer setup' to configure", err)
	}
	applyLogConfig(cfg)
	return cfg, api.New(cfg), nil
}

// applyLogConfig pushes config-file log settings onto the default
// logger. Environment variables were already applied at init and win.
func applyLogConfig(cfg *config.Config) {
	if cfg.LogLevel != "" && os.Getenv("ORGANIZER_LOG_LEVEL") == "" {
		if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
			logger.Default.SetLevel(level)
		}
	}
	if cfg.LogFile != "" && os.Getenv("ORGANIZER_LOG_FILE") == "" {
		if err := logger.Default.SetFile(cfg.LogFile); err != nil {
			logger.Warn("could not open log file %s: %v", cfg.LogFile, err)
		}
	}
}

func runEventCreate(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	draft := event.DraftEvent{OrganizerID: cfg.OrganizerID}
	id, err := eventwizard.Run(cmd.Context(), cfg, client, draft, eventwizard.ModeCreate, "")
	if err != nil {
		return err
	}
	logger.Info("Created event %s", id)
	return nil
}

func runEventEdit(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	draft, err := client.GetEvent(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching event %s: %w", args[0], err)
	}
	if draft.OrganizerID == "" {
		draft.OrganizerID = cfg.OrganizerID
	}

	id, err := eventwizard.Run(cmd.Context(), cfg, client, draft, eventwizard.ModeEdit, args[0])
	if err != nil {
		return err
	}
	logger.Info("Updated event %s", id)
	return nil
}

func runEventList(cmd *cobra.Command, args []string) error {
	_, client, err := loadClient()
	if err != nil {
		return err
	}

	events, err := client.ListEvents(cmd.Context())
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No events yet. Run 'organizer event create' to add one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Title, e.Type)
	}
	return w.Flush()
}

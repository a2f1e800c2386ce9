package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/gatherly/organizer/internal/logger"
	"github.com/gatherly/organizer/internal/tui/theme"
)

const (
	logoText1 = "█▀█ █▀█ █▀▀ ▄▀█ █▄ █ █ ▀█ █▀▀ █▀█"
	logoText2 = "█▄█ █▀▄ █▄█ █▀█ █ ▀█ █ █▄ ██▄ █▀▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "organizer",
	Short: "Terminal panel for event organizers",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

organizer is the event platform's organizer panel for the terminal.
Create and edit events through a guided multi-step wizard, browse your
events and bookings, and keep local markdown receipts of everything you
publish.`

	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(bookingsCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(doctorCmd)
}

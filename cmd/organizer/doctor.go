package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gatherly/organizer/internal/api"
	"github.com/gatherly/organizer/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and backend connectivity",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ok := true
	check := func(name string, err error) {
		if err != nil {
			ok = false
			fmt.Printf("✗ %s: %v\n", name, err)
			return
		}
		fmt.Printf("✓ %s\n", name)
	}

	if !config.Exists() {
		fmt.Println("✗ no config file found (run 'organizer setup')")
	} else {
		fmt.Println("✓ config file present")
	}

	cfg, err := config.Load()
	check("config loads", err)
	if err != nil {
		return fmt.Errorf("doctor found problems")
	}
	check("config valid", cfg.Validate())
	if cfg.Validate() != nil {
		return fmt.Errorf("doctor found problems")
	}

	client := api.New(cfg)
	cats, err := client.Categories(cmd.Context())
	check("backend reachable", err)
	if err == nil {
		fmt.Printf("  %d categories available\n", len(cats))
	}

	_, err = client.Lookup(cmd.Context(), "Berlin")
	check("geocoder reachable", err)

	if !ok {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println("\nAll checks passed.")
	return nil
}

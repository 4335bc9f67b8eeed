package handlers

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"storygen/internal/config"
)

// NewTeamsCmd creates the teams command
func NewTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List the configured teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()

			keys := cfg.TeamKeys()
			sort.Strings(keys)

			for _, key := range keys {
				team := cfg.Sports.Teams[key]
				fmt.Printf("%-10s %s - %s (%s)\n", key, team.Name, team.Sport, team.League)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newPeriodCommand(ctx *commandContext) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "period",
		Short: "Show the current voting period and countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			window, err := cfg.Voting.Window()
			if err != nil {
				return err
			}

			now := time.Now()
			if at = strings.TrimSpace(at); at != "" {
				now, err = time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("parse --at: %w", err)
				}
			}

			period := window.PeriodAt(now)
			cd := window.CountdownAt(now)
			rows := [][]string{
				{"Anchor", fmt.Sprintf("%s %02d:00 UTC", window.Weekday, window.Hour)},
				{"Start", period.Start.Format(time.RFC3339)},
				{"End", period.End.Format(time.RFC3339)},
				{"Countdown", fmt.Sprintf("%dd %02dh %02dm %02ds", cd.Days, cd.Hours, cd.Minutes, cd.Seconds)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{{title: "Field"}, {title: "Value"}}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Evaluate at this RFC3339 time instead of now")
	return cmd
}

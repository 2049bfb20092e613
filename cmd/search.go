package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/whoisrunning/civic-research/internal/model"
)

var searchParams model.SearchParams

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for election candidates",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if searchParams == (model.SearchParams{}) {
			return eris.New("at least one of --name, --state, --county, --city, --office is required")
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		candidates, err := env.Research.SearchCandidates(ctx, searchParams)
		if err != nil {
			return eris.Wrap(err, "search candidates")
		}

		zap.L().Info("search complete",
			zap.Int("candidates", len(candidates)),
			zap.Float64("cost_usd", env.Tracker.Totals().USD),
		)

		return printJSON(candidates)
	},
}

// printJSON writes indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	searchCmd.Flags().StringVar(&searchParams.Name, "name", "", "candidate name")
	searchCmd.Flags().StringVar(&searchParams.State, "state", "", "state")
	searchCmd.Flags().StringVar(&searchParams.County, "county", "", "county")
	searchCmd.Flags().StringVar(&searchParams.City, "city", "", "city")
	searchCmd.Flags().StringVar(&searchParams.Office, "office", "", "office sought")
	rootCmd.AddCommand(searchCmd)
}

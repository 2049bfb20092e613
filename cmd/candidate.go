package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/whoisrunning/civic-research/internal/model"
)

var candidateCmd = &cobra.Command{
	Use:   "candidate <name>",
	Short: "Build a full profile for one candidate",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := strings.Join(args, " ")

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		candidate, err := env.Research.CandidateDetail(ctx, model.MakeID(name), name)
		if err != nil {
			return eris.Wrapf(err, "candidate detail for %s", name)
		}

		zap.L().Info("profile complete",
			zap.String("candidate", candidate.Name),
			zap.Int("positions", len(candidate.KeyPositions)),
			zap.Int("resources", len(candidate.Resources)),
			zap.Float64("cost_usd", env.Tracker.Totals().USD),
		)

		return printJSON(candidate)
	},
}

func init() {
	rootCmd.AddCommand(candidateCmd)
}

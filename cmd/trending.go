package main

import (
	"github.com/spf13/cobra"
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending candidates in current election cycles",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		return printJSON(env.Research.Trending(ctx))
	},
}

var winnersCmd = &cobra.Command{
	Use:   "winners",
	Short: "List recent election winners",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		return printJSON(env.Research.RecentWinners(ctx))
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(winnersCmd)
}

package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/whoisrunning/civic-research/pkg/census"
)

var politiciansCmd = &cobra.Command{
	Use:   "politicians <location>",
	Short: "List elected officials for a location",
	Long:  `Lists currently serving elected officials for a location string such as "Austin, Travis County, Texas".`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		location := strings.Join(args, " ")

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		officials, err := env.Research.OfficialsByLocation(ctx, location)
		if err != nil {
			return eris.Wrapf(err, "officials for %s", location)
		}
		return printJSON(officials)
	},
}

var countiesCmd = &cobra.Command{
	Use:   "counties <state>",
	Short: "List counties in a state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := census.New(census.WithBaseURL(cfg.Census.BaseURL))
		counties, err := c.Counties(cmd.Context(), args[0])
		if err != nil {
			return eris.Wrapf(err, "counties for %s", args[0])
		}
		return printJSON(counties)
	},
}

var citiesCmd = &cobra.Command{
	Use:   "cities <state>",
	Short: "List the largest cities in a state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := census.New(census.WithBaseURL(cfg.Census.BaseURL))
		cities, err := c.Cities(cmd.Context(), args[0])
		if err != nil {
			return eris.Wrapf(err, "cities for %s", args[0])
		}
		return printJSON(cities)
	},
}

func init() {
	rootCmd.AddCommand(politiciansCmd)
	rootCmd.AddCommand(countiesCmd)
	rootCmd.AddCommand(citiesCmd)
}

package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/whoisrunning/civic-research/internal/model"
)

var impactProfile model.DemographicProfile

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Analyze policy impacts for a demographic profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if impactProfile.Location.State == "" {
			return eris.New("--state is required")
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Research.AnalyzeImpacts(ctx, impactProfile)
		if err != nil {
			return eris.Wrap(err, "analyze impacts")
		}
		return printJSON(result)
	},
}

func init() {
	impactCmd.Flags().StringVar(&impactProfile.AgeRange, "age", "", "age range, e.g. 25-34")
	impactCmd.Flags().StringVar(&impactProfile.IncomeRange, "income", "", "income range, e.g. 50-75k")
	impactCmd.Flags().StringVar(&impactProfile.RaceEthnicity, "race", "", "race or ethnicity")
	impactCmd.Flags().StringVar(&impactProfile.EducationLevel, "education", "", "education level")
	impactCmd.Flags().StringVar(&impactProfile.Location.State, "state", "", "state (required)")
	impactCmd.Flags().StringVar(&impactProfile.Location.County, "county", "", "county")
	impactCmd.Flags().StringVar(&impactProfile.Location.City, "city", "", "city")
	rootCmd.AddCommand(impactCmd)
}

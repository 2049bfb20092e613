package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var reportsLimit int

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List community error reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		reports, err := st.ListErrorReports(ctx, reportsLimit, 0)
		if err != nil {
			return eris.Wrap(err, "list error reports")
		}
		return printJSON(reports)
	},
}

func init() {
	reportsCmd.Flags().IntVar(&reportsLimit, "limit", 50, "maximum rows to return")
	rootCmd.AddCommand(reportsCmd)
}

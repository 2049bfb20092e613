package main

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/whoisrunning/civic-research/internal/model"
	"github.com/whoisrunning/civic-research/internal/store"
)

var (
	contribStatus string
	contribLimit  int
	contribExport string
)

var contributionsCmd = &cobra.Command{
	Use:   "contributions",
	Short: "List recorded contributions, optionally exporting to XLSX",
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

		contributions, err := st.ListContributions(ctx, store.ContributionFilter{
			Status: model.ContributionStatus(contribStatus),
			Limit:  contribLimit,
		})
		if err != nil {
			return eris.Wrap(err, "list contributions")
		}

		stats, err := st.ContributionStats(ctx)
		if err != nil {
			return eris.Wrap(err, "contribution stats")
		}
		zap.L().Info("contributions loaded",
			zap.Int("rows", len(contributions)),
			zap.Int("contributors", stats.ContributorCount),
			zap.Int64("total_raised_cents", stats.TotalRaisedCents),
		)

		if contribExport != "" {
			if err := exportContributions(contributions, contribExport); err != nil {
				return err
			}
			zap.L().Info("export written", zap.String("path", contribExport))
			return nil
		}

		return printJSON(contributions)
	},
}

// exportContributions writes the ledger to an XLSX workbook.
func exportContributions(contributions []model.Contribution, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Contributions")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range []string{"ID", "Session", "Amount (cents)", "Currency", "Email", "Recurring", "Status", "Created"} {
		header.AddCell().SetString(col)
	}

	for _, c := range contributions {
		row := sheet.AddRow()
		row.AddCell().SetString(c.ID)
		row.AddCell().SetString(c.SessionID)
		row.AddCell().SetString(strconv.FormatInt(c.AmountCents, 10))
		row.AddCell().SetString(c.Currency)
		row.AddCell().SetString(c.Email)
		row.AddCell().SetString(strconv.FormatBool(c.Recurring))
		row.AddCell().SetString(string(c.Status))
		row.AddCell().SetString(c.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "xlsx: save file")
	}
	return nil
}

func init() {
	contributionsCmd.Flags().StringVar(&contribStatus, "status", "", "filter by status (active, cancelled)")
	contributionsCmd.Flags().IntVar(&contribLimit, "limit", 0, "maximum rows to return")
	contributionsCmd.Flags().StringVar(&contribExport, "export", "", "write an XLSX export to this path")
	rootCmd.AddCommand(contributionsCmd)
}

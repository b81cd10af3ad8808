package cli

import (
	"fmt"
	"time"

	"yamdb/database"
	"yamdb/internal/importer"
	"yamdb/internal/logging"

	"github.com/spf13/cobra"
)

var importDir string

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Load CSV fixture files",
	Long: `Load CSV fixture files into the database. Columns are matched by header name.

Known files, imported in this order:
  category.csv genre.csv titles.csv genre_title.csv users.csv review.csv comments.csv

Examples:
  yamdb import                         # every known file found in --dir
  yamdb import titles.csv genre.csv    # only these, still in dependency order`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		results, err := importer.New(db, logging.L).ImportDir(cmd.Context(), importDir, args)
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %6d rows  %s\n", r.File, r.Rows, r.Duration.Round(time.Millisecond))
		}
		return err
	},
}

func init() {
	importCmd.Flags().StringVar(&importDir, "dir", "static/data", "Directory containing the CSV files")
}

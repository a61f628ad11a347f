package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportFrom string
	exportTo   string
)

var exportCmd = &cobra.Command{
	Use:   "export <csv-file>",
	Short: "Export trades to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDateFlag(exportFrom, false)
		if err != nil {
			return fmt.Errorf("invalid --from value: %w", err)
		}
		to, err := parseDateFlag(exportTo, true)
		if err != nil {
			return fmt.Errorf("invalid --to value: %w", err)
		}

		count := store.ExportCSV(args[0], from, to)
		fmt.Printf("Exported %d trades to %s\n", count, args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Start of range (RFC3339 or YYYY-MM-DD, inclusive)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "End of range (RFC3339 or YYYY-MM-DD, inclusive)")
}

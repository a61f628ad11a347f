package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Import trades from a CSV file (all-or-nothing)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := store.ImportCSV(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d trades from %s\n", count, args[0])
		return nil
	},
}

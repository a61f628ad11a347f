package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest recorded bot status and market scan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status := store.GetLatestStatus()
		if status == nil {
			fmt.Println("No bot status recorded.")
		} else {
			fmt.Printf("Status:    %s (%s)\n", status.Status, status.Timestamp.Format("2006-01-02 15:04:05"))
			if status.AccountValue != nil {
				fmt.Printf("Account:   %.2f\n", *status.AccountValue)
			}
			if len(status.ActivePairs) > 0 {
				fmt.Printf("Pairs:     %s\n", strings.Join(status.ActivePairs, ", "))
			}
			if status.Message != nil {
				fmt.Printf("Message:   %s\n", *status.Message)
			}
		}

		scan := store.GetLatestScan("")
		if scan == nil {
			fmt.Println("No market scans recorded.")
		} else {
			fmt.Printf("Last scan: %s %s @ %g (%s)\n",
				scan.Pair, scan.Signal, scan.Price, scan.Timestamp.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

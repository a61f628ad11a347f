package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trading-bot-store-go/internal/database"
)

var (
	tradesPair   string
	tradesAction string
	tradesFrom   string
	tradesTo     string
	tradesLimit  int
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List recorded trades with their cumulative net profit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDateFlag(tradesFrom, false)
		if err != nil {
			return fmt.Errorf("invalid --from value: %w", err)
		}
		to, err := parseDateFlag(tradesTo, true)
		if err != nil {
			return fmt.Errorf("invalid --to value: %w", err)
		}

		trades := store.GetTrades(database.TradeFilter{
			Pair:   tradesPair,
			Action: tradesAction,
			Start:  from,
			End:    to,
			Limit:  tradesLimit,
		})
		if len(trades) == 0 {
			fmt.Println("No trades found.")
			return nil
		}

		fmt.Printf("%-20s %-10s %-5s %12s %12s %12s %12s\n",
			"TIMESTAMP", "PAIR", "SIDE", "PRICE", "QTY", "NET", "CUMULATIVE")
		for _, t := range trades {
			net := ""
			if t.NetProfit != nil {
				net = fmt.Sprintf("%.2f", *t.NetProfit)
			}
			fmt.Printf("%-20s %-10s %-5s %12g %12g %12s %12.2f\n",
				t.Timestamp.Format("2006-01-02 15:04:05"),
				t.Pair, t.Action, t.Price, t.Quantity, net, t.CumulativeNetProfit)
		}
		return nil
	},
}

func init() {
	tradesCmd.Flags().StringVar(&tradesPair, "pair", "", "Filter by trading pair (e.g. BTCUSDT)")
	tradesCmd.Flags().StringVar(&tradesAction, "action", "", "Filter by action (BUY or SELL)")
	tradesCmd.Flags().StringVar(&tradesFrom, "from", "", "Start of range (RFC3339 or YYYY-MM-DD, inclusive)")
	tradesCmd.Flags().StringVar(&tradesTo, "to", "", "End of range (RFC3339 or YYYY-MM-DD, inclusive)")
	tradesCmd.Flags().IntVar(&tradesLimit, "limit", 0, "Maximum number of trades to list (0 = no cap)")
}

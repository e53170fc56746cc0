package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caredash/impactboard/pkg/aggregate"
	"github.com/caredash/impactboard/pkg/client"
)

// dashboardCmd prints the admin dashboard aggregate.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Fetch and print the admin dashboard aggregate.",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		baseURL := viper.GetString("api.base_url")
		if baseURL == "" {
			return errors.New("api.base_url is not set (see ~/.impactboard.yaml)")
		}

		c := client.New(baseURL, viper.GetString("api.token"))
		programs, donations := c.FetchAll(context.Background())

		engine := aggregate.New(aggregate.DefaultConfig())
		res := engine.Aggregate(programs, donations, "")

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		printStatCards(aggregate.StatCards(res))
		return nil
	},
}

func printStatCards(cards []aggregate.SummaryStat) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "STAT\tVALUE\t")
	for _, card := range cards {
		fmt.Fprintf(w, "%s\t%s\t\n", card.Label, card.Value)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().Bool("json", false, "Print the full aggregate as JSON")
}

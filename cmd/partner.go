package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caredash/impactboard/pkg/aggregate"
	"github.com/caredash/impactboard/pkg/client"
	"github.com/caredash/impactboard/pkg/identity"
	"github.com/caredash/impactboard/pkg/session"
)

// partnerCmd prints the owner-scoped partner dashboard aggregate.
var partnerCmd = &cobra.Command{
	Use:   "partner",
	Short: "Fetch and print the partner dashboard aggregate (owner-scoped).",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		baseURL := viper.GetString("api.base_url")
		if baseURL == "" {
			return errors.New("api.base_url is not set (see ~/.impactboard.yaml)")
		}

		actor := identity.ResolveActor(session.FromViper(viper.GetViper()))
		if actor == "" {
			fmt.Println("Partner identity not available: no session id and no decodable bearer token.")
			fmt.Println("Owner-scoped figures will be reported as N/A.")
		}

		c := client.New(baseURL, viper.GetString("api.token"))
		programs, donations := c.FetchAll(context.Background())

		engine := aggregate.New(aggregate.DefaultConfig())
		res := engine.Aggregate(programs, donations, actor)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		printStatCards(aggregate.StatCards(res))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(partnerCmd)
	partnerCmd.Flags().Bool("json", false, "Print the full aggregate as JSON")
}

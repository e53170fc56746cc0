package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caredash/impactboard/internal/server"
	"github.com/caredash/impactboard/pkg/aggregate"
	"github.com/caredash/impactboard/pkg/client"
	"github.com/caredash/impactboard/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr, _ := cmd.Flags().GetString("listen")
		pollMinutes, _ := cmd.Flags().GetInt("poll-interval")

		baseURL := viper.GetString("api.base_url")
		if baseURL == "" {
			return errors.New("api.base_url is not set (see ~/.impactboard.yaml)")
		}

		var pollInterval time.Duration
		if pollMinutes > 0 {
			pollInterval = time.Duration(pollMinutes) * time.Minute
		}

		srv := server.New(server.Config{
			Client:       client.New(baseURL, viper.GetString("api.token")),
			Engine:       aggregate.New(aggregate.DefaultConfig()),
			Session:      session.FromViper(viper.GetViper()),
			Username:     viper.GetString("serve.username"),
			Password:     viper.GetString("serve.password"),
			PollInterval: pollInterval,
		})
		return srv.Start(listenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serveCmd.Flags().Int("poll-interval", 5, "Minutes between aggregate refreshes (0 to disable)")
}

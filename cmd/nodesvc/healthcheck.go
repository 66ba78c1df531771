package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AmirOssanloo/pkg-sits-node-service/internal/utils"
	"github.com/AmirOssanloo/pkg-sits-node-service/models"
	"github.com/spf13/cobra"
)

var errUnhealthy = errors.New("service is unhealthy")

func newHealthcheckCmd() *cobra.Command {
	var (
		url     string
		path    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe the health endpoint of a running service",
		Long: `healthcheck exits with a non-zero status unless the health endpoint
answers 200. It is meant for container HEALTHCHECK instructions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var report models.HealthReport
			resp, err := utils.NewHTTPClient(url, timeout).R().
				SetResult(&report).
				SetError(&report).
				Get(path)
			if err != nil {
				return fmt.Errorf("error calling %s%s: %w", url, path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d)\n", report.Service, report.Status, resp.StatusCode())
			for name, check := range report.Checks {
				if check.Status != models.HealthOK {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", name, check.Error)
				}
			}

			if resp.StatusCode() != http.StatusOK {
				return errUnhealthy
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://127.0.0.1:3000", "base URL of the service")
	cmd.Flags().StringVar(&path, "path", "/health", "health endpoint path")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")

	return cmd
}

package main

import (
	"net/http"

	"github.com/AmirOssanloo/pkg-sits-node-service/configuration"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/utils"
	"github.com/AmirOssanloo/pkg-sits-node-service/models"
	"github.com/AmirOssanloo/pkg-sits-node-service/nodeservice"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *globalFlags, info models.AppBuildInfo) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the service",
		Long: `serve assembles the configuration, builds the middleware pipeline and
listens until a shutdown signal arrives. Authenticated callers can inspect
their identity at GET /whoami when auth is configured for it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printBuildInfo(cmd.ErrOrStderr(), info)

			processEnv, err := flags.processEnv()
			if err != nil {
				return err
			}
			cfg, err := configuration.AssembleFrom(processEnv, configuration.WithStrict(strict))
			if err != nil {
				return err
			}

			svc := nodeservice.New(cfg,
				nodeservice.WithBuildInfo(info),
				nodeservice.WithLogOutput(cmd.OutOrStdout()),
			)
			runner, err := svc.Setup(nodeservice.SetupOptions{Routes: whoamiRoutes})
			if err != nil {
				return err
			}

			return runner.Run(cmd.Context(), nodeservice.RunOptions{})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "reject unknown configuration keys")

	return cmd
}

func whoamiRoutes(r chi.Router) {
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		_, _ = utils.WriteJSON(w, map[string]any{
			"correlationId": nodeservice.CorrelationID(r),
			"identity":      nodeservice.CallerIdentity(r),
		}, http.StatusOK)
	})
}

package main

import (
	"cmp"
	"os"

	"github.com/AmirOssanloo/pkg-sits-node-service/configuration"
	"github.com/AmirOssanloo/pkg-sits-node-service/models"
	"github.com/spf13/cobra"
)

// globalFlags override the process environment read by configuration
// assembly.
type globalFlags struct {
	nodeEnv   string
	configDir string
}

func (f *globalFlags) processEnv() (configuration.ProcessEnv, error) {
	if f.nodeEnv != "" {
		p := configuration.ProcessEnv{NodeEnv: f.nodeEnv, ConfigDir: f.configDir}
		if p.ConfigDir == "" {
			p.ConfigDir = cmp.Or(os.Getenv("CONFIG_DIR"), "config")
		}
		return p, nil
	}

	p, err := configuration.ParseProcessEnv()
	if err != nil {
		return configuration.ProcessEnv{}, err
	}
	if f.configDir != "" {
		p.ConfigDir = f.configDir
	}
	return p, nil
}

func newRootCmd(info models.AppBuildInfo) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "nodesvc",
		Short: "Run and inspect node services",
		Long: `nodesvc runs an HTTP service assembled from layered YAML configuration
and offers helpers to validate that configuration, print its schema and
mint development tokens.`,
		Version:      info.BuildVersion(),
		SilenceUsage: true,
	}
	root.SetVersionTemplate(`{{printf "nodesvc version %s\n" .Version}}`)

	root.PersistentFlags().StringVar(&flags.nodeEnv, "env", "", "environment overlay to load (defaults to NODE_ENV)")
	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "directory holding index.yaml (defaults to CONFIG_DIR or ./config)")

	root.AddCommand(
		newServeCmd(flags, info),
		newConfigCmd(flags),
		newTokenCmd(),
		newHealthcheckCmd(),
		newVersionCmd(info),
	)

	return root
}

func newVersionCmd(info models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printBuildInfo(cmd.OutOrStdout(), info)
		},
	}
}

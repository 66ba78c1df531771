package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AmirOssanloo/pkg-sits-node-service/configuration"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errInvalidConfig = errors.New("configuration is invalid")

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect service configuration",
	}
	cmd.AddCommand(
		newConfigValidateCmd(flags),
		newConfigPrintCmd(flags),
		newConfigSchemaCmd(),
	)
	return cmd
}

func newConfigValidateCmd(flags *globalFlags) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the merged configuration and list every issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			processEnv, err := flags.processEnv()
			if err != nil {
				return err
			}
			tree, err := configuration.MergedTree(processEnv)
			if err != nil {
				return err
			}

			res := configuration.SafeValidate(tree, configuration.WithStrict(strict))
			if !res.OK() {
				for _, issue := range res.Err.Issues {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s (%s)\n", issue.Path, issue.Message, issue.Code)
				}
				return fmt.Errorf("%w: %d issue(s)", errInvalidConfig, len(res.Err.Issues))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "configuration for %q is valid\n", processEnv.NodeEnv)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "reject unknown configuration keys")

	return cmd
}

func newConfigPrintCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the validated configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			processEnv, err := flags.processEnv()
			if err != nil {
				return err
			}
			cfg, err := configuration.AssembleFrom(processEnv)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("error encoding configuration: %w", err)
			}
			return enc.Close()
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	var (
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := configuration.JSONSchema(strict)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("error writing schema: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the schema to a file instead of stdout")
	cmd.Flags().BoolVar(&strict, "strict", false, "disallow unknown properties")

	return cmd
}

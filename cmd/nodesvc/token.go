package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/AmirOssanloo/pkg-sits-node-service/internal/utils"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		issuer  string
		subject string
		secret  string
		ttl     time.Duration
		claims  []string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an HS256 bearer token for a jwt auth strategy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			extra := make(map[string]any, len(claims))
			for _, c := range claims {
				k, v, ok := strings.Cut(c, "=")
				if !ok || k == "" {
					return fmt.Errorf("invalid claim %q, expected key=value", c)
				}
				extra[k] = v
			}

			token, err := utils.GenerateJWTToken(issuer, subject, ttl, secret, extra)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token.SignedString)
			return err
		},
	}
	cmd.Flags().StringVar(&issuer, "issuer", "", "iss claim")
	cmd.Flags().StringVar(&subject, "subject", "", "sub claim")
	cmd.Flags().StringVar(&secret, "secret", "", "HMAC signing secret")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	cmd.Flags().StringArrayVar(&claims, "claim", nil, "extra claim as key=value, repeatable")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}

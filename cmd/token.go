// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	clientID     string
	clientSecret string
	tokenURL     string
	issuerURL    string
	scopes       []string
	tokenFormat  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Get an access token for the JSON API using the client credentials flow",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := fetchToken(cmd.Context())
		if err != nil {
			return err
		}

		switch tokenFormat {
		case "json":
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
				"access_token": token.AccessToken,
				"token_type":   token.TokenType,
				"expiry":       token.Expiry,
			})
		case "env":
			cmd.Printf("export AGENCY_ACCESS_TOKEN=%s\n", token.AccessToken)
		default:
			cmd.Println(token.AccessToken)
		}

		return nil
	},
}

func fetchToken(ctx context.Context) (*oauth2.Token, error) {
	endpoint := tokenURL
	if endpoint == "" {
		if issuerURL == "" {
			return nil, fmt.Errorf("either --token-url or --issuer-url must be provided")
		}

		provider, err := oidc.NewProvider(ctx, issuerURL)
		if err != nil {
			return nil, fmt.Errorf("failed to discover issuer %s: %w", issuerURL, err)
		}
		endpoint = provider.Endpoint().TokenURL
	}

	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     endpoint,
		Scopes:       scopes,
	}

	token, err := cfg.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&clientID, "client-id", "", "Client ID")
	tokenCmd.Flags().StringVar(&clientSecret, "client-secret", "", "Client Secret")
	tokenCmd.Flags().StringVar(&tokenURL, "token-url", "", "Token URL")
	tokenCmd.Flags().StringVar(&issuerURL, "issuer-url", "", "Issuer URL (for OIDC discovery)")
	tokenCmd.Flags().StringSliceVar(&scopes, "scopes", []string{}, "Scopes (comma-separated)")
	tokenCmd.Flags().StringVar(&tokenFormat, "format", "text", "Output format (text, json or env)")

	_ = tokenCmd.MarkFlagRequired("client-id")
	_ = tokenCmd.MarkFlagRequired("client-secret")
}

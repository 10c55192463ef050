package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/storefront-go/internal/api"
	"github.com/tonimelisma/storefront-go/internal/storefront"
)

// Token state constants for status reporting.
const (
	tokenStateMissing = "missing"
	tokenStateExpired = "expired"
	tokenStateValid   = "valid"
	tokenStateOpaque  = "present (not a JWT)"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show backend, credential storage and session state",
		Long: `Display where requests go, where credentials are kept and whether a
session is stored. Reads local state only; nothing is sent to the backend.`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

// statusOutput is the JSON schema for `status --json`.
type statusOutput struct {
	BaseURL         string     `json:"base_url"`
	Timeout         string     `json:"timeout"`
	Storage         string     `json:"storage"`
	CredentialsPath string     `json:"credentials_path,omitempty"`
	TokenState      string     `json:"token_state"`
	User            string     `json:"user,omitempty"`
	Role            string     `json:"role,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	RefreshStored   bool       `json:"refresh_token_stored"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())
	client := cc.Service.Client()

	out := statusOutput{
		BaseURL:         client.BaseURL(),
		Timeout:         client.Timeout().String(),
		Storage:         cc.Cfg.Storage.Backend,
		CredentialsPath: cc.Cfg.CredentialsPath,
	}

	fillTokenState(&out, client.Token(), time.Now())

	refresh, err := cc.Store.Get(api.RefreshTokenKey)
	if err != nil {
		cc.Logger.Warn("reading refresh token failed", slog.String("error", err.Error()))
	}

	out.RefreshStored = refresh != ""

	if cc.JSONOutput() {
		return printJSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Backend:     %s (timeout %s)\n", out.BaseURL, out.Timeout)

	if out.CredentialsPath != "" {
		fmt.Fprintf(w, "Storage:     %s (%s)\n", out.Storage, out.CredentialsPath)
	} else {
		fmt.Fprintf(w, "Storage:     %s\n", out.Storage)
	}

	fmt.Fprintf(w, "Token:       %s\n", out.TokenState)

	if out.User != "" {
		fmt.Fprintf(w, "User:        %s (%s)\n", out.User, out.Role)
	}

	if out.ExpiresAt != nil {
		fmt.Fprintf(w, "Expires:     %s\n", formatTime(*out.ExpiresAt))
	}

	fmt.Fprintf(w, "Refresh:     %t\n", out.RefreshStored)

	return nil
}

// fillTokenState classifies token from its unverified claims.
func fillTokenState(out *statusOutput, token string, now time.Time) {
	if token == "" {
		out.TokenState = tokenStateMissing

		return
	}

	claims, err := storefront.ParseClaims(token)
	if err != nil {
		out.TokenState = tokenStateOpaque

		return
	}

	out.User = claims.Email
	if out.User == "" {
		out.User = claims.Subject
	}

	out.Role = claims.Role

	if !claims.ExpiresAt.IsZero() {
		out.ExpiresAt = &claims.ExpiresAt
	}

	if claims.Expired(now) {
		out.TokenState = tokenStateExpired

		return
	}

	out.TokenState = tokenStateValid
}

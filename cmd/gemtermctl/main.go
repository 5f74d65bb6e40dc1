// Command gemtermctl manages the invite-code ledger of a gemterm server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/gemterm/pkg/termsdk"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the connection flags shared by every subcommand.
type options struct {
	server   string
	identity string
	code     string
	token    string
	timeout  time.Duration
	json     bool
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "gemtermctl",
		Short: "Administer a gemterm server",
		Long: `Administer the invite-code ledger of a gemterm server.

Commands authenticate with --token, or log in with --identity and --code
(the admin identity and master code). Every flag falls back to a GEMTERM_*
environment variable.

Examples:
  gemtermctl codes list
  gemtermctl codes issue --days 30 --count 5
  gemtermctl codes issue --lifetime
  gemtermctl codes bind GEM-AB12CD34EF vip@example.com
  gemtermctl codes revoke GEM-AB12CD34EF
`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", envOr("GEMTERM_SERVER", "http://localhost:8080"), "Server base URL (GEMTERM_SERVER)")
	cmd.PersistentFlags().StringVar(&opts.identity, "identity", os.Getenv("GEMTERM_IDENTITY"), "Login identity (GEMTERM_IDENTITY)")
	cmd.PersistentFlags().StringVar(&opts.code, "code", os.Getenv("GEMTERM_CODE"), "Invite or master code (GEMTERM_CODE)")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("GEMTERM_TOKEN"), "Session access token; skips login (GEMTERM_TOKEN)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Print results as JSON")

	cmd.AddCommand(loginCmd(opts))
	cmd.AddCommand(healthCmd(opts))
	cmd.AddCommand(codesCmd(opts))

	return cmd
}

func (o *options) client() *termsdk.Client {
	c := termsdk.NewClient(o.server)
	c.HTTPClient.Timeout = o.timeout
	return c
}

// session returns a session from --token, or logs in with --identity/--code.
func (o *options) session(ctx context.Context) (*termsdk.Session, error) {
	c := o.client()
	if o.token != "" {
		s := c.NewSessionFromToken(o.token, termsdk.SessionInfo{})
		info, err := s.GetSession(ctx)
		if err != nil {
			return nil, fmt.Errorf("token rejected: %w", err)
		}
		return c.NewSessionFromToken(o.token, *info), nil
	}
	if o.identity == "" || o.code == "" {
		return nil, errors.New("either --token or both --identity and --code are required")
	}
	s, err := c.Login(ctx, o.identity, o.code)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return s, nil
}

func loginCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Redeem a code and print the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.token = ""
			s, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), termsdk.LoginResponse{
					AccessToken: s.AccessToken(),
					TokenType:   "Bearer",
					ExpiresAt:   s.Info().ExpiryDate.Unix(),
					Session:     s.Info(),
				})
			}
			info := s.Info()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "identity:  %s\n", info.Identity)
			fmt.Fprintf(out, "admin:     %t\n", info.IsAdmin)
			fmt.Fprintf(out, "expires:   %s\n", info.ExpiryDate.Format(time.RFC3339))
			fmt.Fprintf(out, "token:     %s\n", s.AccessToken())
			return nil
		},
	}
}

func healthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := opts.client().GetReadiness(cmd.Context())
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), h)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status:    %s\n", h.Status)
			fmt.Fprintf(out, "version:   %s\n", h.Version)
			fmt.Fprintf(out, "uptime:    %s\n", h.Uptime)
			if h.Checks != nil {
				fmt.Fprintf(out, "database:  %s\n", h.Checks.Database)
				fmt.Fprintf(out, "signer:    %s\n", h.Checks.Signer)
				fmt.Fprintf(out, "analysis:  %s\n", h.Checks.Analysis)
			}
			return nil
		},
	}
}

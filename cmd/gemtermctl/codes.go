package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/gemterm/pkg/termsdk"
)

func codesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Manage invite codes",
	}

	cmd.AddCommand(codesListCmd(opts))
	cmd.AddCommand(codesIssueCmd(opts))
	cmd.AddCommand(codesRevokeCmd(opts))
	cmd.AddCommand(codesBindCmd(opts))
	cmd.AddCommand(codesUnbindCmd(opts))

	return cmd
}

func codesListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every invite code, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			codes, err := s.ListCodes(cmd.Context())
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), codes)
			}
			return printCodes(cmd.OutOrStdout(), codes)
		},
	}
}

func codesIssueCmd(opts *options) *cobra.Command {
	var (
		days     int
		lifetime bool
		count    int
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue new invite codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if lifetime == (days > 0) {
				return errors.New("exactly one of --days or --lifetime is required")
			}
			if count < 1 {
				return errors.New("--count must be at least 1")
			}

			s, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}

			issued := make([]termsdk.InviteCode, 0, count)
			for range count {
				c, err := s.IssueCode(cmd.Context(), termsdk.IssueCodeRequest{DurationDays: days, Lifetime: lifetime})
				if err != nil {
					return err
				}
				issued = append(issued, *c)
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), issued)
			}
			return printCodes(cmd.OutOrStdout(), issued)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days the code stays redeemable")
	cmd.Flags().BoolVar(&lifetime, "lifetime", false, "Issue a code that never expires")
	cmd.Flags().IntVar(&count, "count", 1, "Number of codes to issue")
	cmd.MarkFlagsMutuallyExclusive("days", "lifetime")

	return cmd
}

func codesRevokeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke CODE...",
		Short: "Delete codes from the ledger; existing sessions stay valid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			for _, code := range args {
				if err := s.RevokeCode(cmd.Context(), code); err != nil {
					return fmt.Errorf("revoke %s: %w", code, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "revoked %s\n", code)
			}
			return nil
		},
	}
}

func codesBindCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bind CODE IDENTITY",
		Short: "Bind a code to an identity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			c, err := s.BindCode(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), c)
			}
			return printCodes(cmd.OutOrStdout(), []termsdk.InviteCode{*c})
		},
	}
}

func codesUnbindCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "unbind CODE",
		Short: "Return a code to the unused state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.UnbindCode(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unbound %s\n", args[0])
			return nil
		},
	}
}

func printCodes(w io.Writer, codes []termsdk.InviteCode) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tDURATION\tEXPIRES\tUSED BY\tCREATED")
	for _, c := range codes {
		duration := "lifetime"
		if c.DurationDays != nil {
			duration = strconv.Itoa(*c.DurationDays) + "d"
		}
		expires := "-"
		if c.ExpiresAt != nil {
			expires = c.ExpiresAt.Format(time.DateOnly)
		}
		usedBy := "-"
		if c.IsUsed {
			usedBy = c.UsedBy
			if c.ManualBound {
				usedBy += " (manual)"
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.Code, duration, expires, usedBy, c.CreatedAt.Format(time.DateOnly))
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

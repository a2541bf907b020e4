package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/willibrandon/sqlcreds/internal/credentials"
	"github.com/willibrandon/sqlcreds/internal/logger"
	"github.com/willibrandon/sqlcreds/internal/prompt"
	"github.com/willibrandon/sqlcreds/internal/secret"
)

type outputOptions struct {
	format      string
	showSecrets bool
}

func (o *outputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "output", "o", "json", "output format: json, yaml, connstr")
	cmd.Flags().BoolVar(&o.showSecrets, "show-secrets", false, "print passwords and tokens instead of masking them")
}

func (o *outputOptions) validate() error {
	switch o.format {
	case "json", "yaml", "connstr":
		return nil
	default:
		return fmt.Errorf("--output must be one of json, yaml, connstr, got %q", o.format)
	}
}

// newDetailsCmd creates the details subcommand
func newDetailsCmd(g *globalOptions) *cobra.Command {
	var profile string
	out := &outputOptions{}

	cmd := &cobra.Command{
		Use:   "details",
		Short: "Print connection details for a profile",
		Long: `Load a saved profile, resolve its password from password_command or
SQLCREDS_PASSWORD, ask for any required field still missing, and print the
connection details.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			cfg, err := g.setup()
			if err != nil {
				return err
			}
			plat, err := g.hostPlatform()
			if err != nil {
				return err
			}

			c, err := cfg.Profile(profile)
			if err != nil {
				return err
			}
			if err := fillPassword(cmd.Context(), c); err != nil {
				return err
			}

			prompter := prompt.NewTerminalPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			filled, err := prompt.EnsureRequiredFields(cmd.Context(), c, cfg.PasswordRequired, prompter, plat)
			if err != nil {
				return err
			}
			if filled == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "cancelled")
				return errCancelled
			}

			return printDetails(cmd.OutOrStdout(), credentials.BuildConnectionDetails(filled), out)
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "profile name (default: default_profile from config)")
	out.addFlags(cmd)
	return cmd
}

// newCompleteCmd creates the complete subcommand
func newCompleteCmd(g *globalOptions) *cobra.Command {
	out := &outputOptions{}

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Enter a new connection interactively",
		Long:  `Ask for every connection field, including the database name, and print the connection details.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			cfg, err := g.setup()
			if err != nil {
				return err
			}
			plat, err := g.hostPlatform()
			if err != nil {
				return err
			}

			c := &credentials.Credentials{}
			questions := prompt.BuildQuestions(true, cfg.PasswordRequired, plat)
			prompter := prompt.NewTerminalPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

			answers, err := prompter.Prompt(cmd.Context(), questions, c)
			if err != nil {
				return err
			}
			if answers == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "cancelled")
				return errCancelled
			}

			return printDetails(cmd.OutOrStdout(), credentials.BuildConnectionDetails(c), out)
		},
	}

	out.addFlags(cmd)
	return cmd
}

// fillPassword resolves a missing password for password-based profiles
// before falling back to the interactive prompt.
func fillPassword(ctx context.Context, c *credentials.Credentials) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.Password != "" || !c.IsPasswordBased() {
		return nil
	}

	password, found, err := secret.ResolvePassword(ctx, c.PasswordCommand)
	if err != nil {
		logger.Error("Failed to retrieve password", "profile", c.ProfileName, "error", err)
		return fmt.Errorf("failed to retrieve password: %w", err)
	}
	if found {
		logger.Debug("Password retrieved without prompting", "profile", c.ProfileName)
		c.Password = password
	}
	return nil
}

func printDetails(w io.Writer, details credentials.ConnectionDetails, o *outputOptions) error {
	logger.Info("Connection details built",
		"server", details.ServerName,
		"database", details.DatabaseName,
		"auth", details.AuthenticationType,
	)

	if !o.showSecrets {
		details = details.Redacted()
	}

	switch o.format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(details); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case "connstr":
		_, err := fmt.Fprintln(w, details.Render())
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(details); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}
}

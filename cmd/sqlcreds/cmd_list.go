package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/willibrandon/sqlcreds/internal/credentials"
	"github.com/willibrandon/sqlcreds/internal/prompt"
)

var (
	nameFormat  = color.New(color.FgHiWhite, color.Bold).SprintFunc()
	mutedFormat = color.New(color.FgHiBlack).SprintFunc()
)

// newAuthTypesCmd creates the auth-types subcommand
func newAuthTypesCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "auth-types",
		Short: "List authentication types offered on this platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plat, err := g.hostPlatform()
			if err != nil {
				return err
			}
			for _, choice := range prompt.ListAuthChoices(plat) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", nameFormat(choice.Name), mutedFormat(choice.Value))
			}
			return nil
		},
	}
}

// newProfilesCmd creates the profiles subcommand
func newProfilesCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List saved connection profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.setup()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(cfg.Profiles) == 0 {
				fmt.Fprintln(w, "No profiles configured")
				return nil
			}

			for i := range cfg.Profiles {
				p := &cfg.Profiles[i]
				marker := " "
				if p.ProfileName == cfg.DefaultProfile {
					marker = "*"
				}
				auth := p.AuthenticationType
				if auth == "" {
					auth = credentials.AuthTypeToString(credentials.AuthSQLLogin)
				}
				details := credentials.BuildConnectionDetails(p)
				fmt.Fprintf(w, "%s %s\t%s\t%s\n", marker, nameFormat(p.ProfileName), details.ServerName, mutedFormat(auth))
			}
			return nil
		},
	}
}

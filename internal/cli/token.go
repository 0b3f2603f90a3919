package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/billsplitter/internal/auth"
)

func newTokenCmd(a *app) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token signed with the configured auth secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cfg.AuthEnabled() {
				return errors.New("auth_secret is not configured (set BILLSPLITTER_AUTH_SECRET)")
			}

			token, err := auth.NewJWTManager(a.cfg.AuthSecret, a.cfg.TokenTTL).Generate(subject)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "name of the caller the token identifies")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

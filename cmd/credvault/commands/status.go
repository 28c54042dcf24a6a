package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statusCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether account credentials are present and protected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts := s.wire.Accounts
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Directory: %s\n", s.cfg.Home)
			fmt.Fprintf(out, "State: %s\n", accounts.State())
			if accounts.IsPresent() {
				fmt.Fprintf(out, "Password protected: %t\n", accounts.IsPasswordProtected())
			}
			return nil
		},
	}
}

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// The generated password lives only in local settings, so an archive sealed
// under it could never be imported elsewhere.
var errExportUnprotected = errors.New("set a password with 'credvault passwd' before exporting")

func exportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "export [archive]",
		Short: "Write the account key and certificate to a portable archive",
		Long: "Write the account key and certificate to a zip archive that can be imported on\n" +
			"another device. The key stays encrypted under its current password.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts := s.wire.Accounts
			if accounts.IsPresent() && !accounts.IsPasswordProtected() {
				return errExportUnprotected
			}
			if err := accounts.Export(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account exported to %s\n", args[0])
			return nil
		},
	}
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"credvault/internal/domain"
)

func passwdCmd(s *session) *cobra.Command {
	var (
		oldFile    string
		newFile    string
		noPassword bool
	)
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change or remove the password protecting the account key",
		Long: "Change the password protecting the account key. With --no-password the key is\n" +
			"sealed under a generated password kept in the local settings, so it loads\n" +
			"without prompting but stays encrypted on disk.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts := s.wire.Accounts

			oldPassword := domain.NoPassword()
			if accounts.IsPasswordProtected() {
				var err error
				if oldPassword, err = readPassword(cmd, oldFile, "Current password", false); err != nil {
					return err
				}
			}

			newPassword := domain.NoPassword()
			if !noPassword {
				var err error
				if newPassword, err = readPassword(cmd, newFile, "New password", true); err != nil {
					return err
				}
			}

			if err := accounts.SetPassword(oldPassword, newPassword); err != nil {
				return err
			}
			if noPassword {
				fmt.Fprintln(cmd.OutOrStdout(), "Password removed.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Password changed.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&oldFile, "old-password-file", "", `read the current password from this file ("-" prompts)`)
	cmd.Flags().StringVar(&newFile, "new-password-file", "", `read the new password from this file ("-" prompts)`)
	cmd.Flags().BoolVar(&noPassword, "no-password", false, "remove the user password")
	cmd.MarkFlagsMutuallyExclusive("new-password-file", "no-password")
	return cmd
}

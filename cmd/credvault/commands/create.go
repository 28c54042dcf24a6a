package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"credvault/internal/domain"
)

func createCmd(s *session) *cobra.Command {
	var (
		passwordFile string
		noPassword   bool
	)
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Generate a new account key and bridge certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := domain.NoPassword()
			if !noPassword {
				var err error
				if password, err = readPassword(cmd, passwordFile, "Password", true); err != nil {
					return err
				}
			}
			key, err := s.wire.Accounts.Create(args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created.")
			printKey(cmd, key)
			return nil
		},
	}
	cmd.Flags().StringVar(&passwordFile, "password-file", "", `read the password from this file ("-" prompts)`)
	cmd.Flags().BoolVar(&noPassword, "no-password", false, "protect the key with a generated password instead")
	cmd.MarkFlagsMutuallyExclusive("password-file", "no-password")
	return cmd
}

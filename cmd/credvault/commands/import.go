package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func importCmd(s *session) *cobra.Command {
	var passwordFile string
	cmd := &cobra.Command{
		Use:   "import [archive]",
		Short: "Replace the account with one exported from another device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, passwordFile, "Archive password", false)
			if err != nil {
				return err
			}
			key, err := s.wire.Accounts.ImportAccount(args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account imported.")
			printKey(cmd, key)
			return nil
		},
	}
	cmd.Flags().StringVar(&passwordFile, "password-file", "", `read the archive password from this file ("-" prompts)`)
	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"credvault/internal/crypto"
	"credvault/internal/domain"
)

// maxAttempts bounds interactive password prompts.
const maxAttempts = 3

func loadCmd(s *session) *cobra.Command {
	var passwordFile string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Unlock the account key and print its fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts := s.wire.Accounts
			if !accounts.IsPresent() {
				return domain.NewError(domain.KindReadFile, "load", fmt.Errorf("no account in %s", s.cfg.Home))
			}

			var key *domain.PersonalKey
			var err error
			if !accounts.IsPasswordProtected() {
				key, err = accounts.Load(domain.NoPassword())
			} else {
				for attempt := 1; ; attempt++ {
					var password domain.Password
					password, err = readPassword(cmd, passwordFile, "Password", false)
					if err != nil {
						return err
					}
					key, err = accounts.Load(password)
					kind, ok := domain.KindOf(err)
					if err == nil || !ok || !kind.Retryable() || !interactive(passwordFile) || attempt == maxAttempts {
						break
					}
					fmt.Fprintln(cmd.ErrOrStderr(), "Wrong password, try again.")
				}
			}
			if err != nil {
				return err
			}
			printKey(cmd, key)
			return nil
		},
	}
	cmd.Flags().StringVar(&passwordFile, "password-file", "", `read the password from this file ("-" prompts)`)
	return cmd
}

func printKey(cmd *cobra.Command, key *domain.PersonalKey) {
	pub := key.SigningPublicKey()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Fingerprint: %s\n", crypto.Fingerprint(pub.Slice()))
	if cert := key.Certificate(); cert != nil {
		fmt.Fprintf(out, "Account: %s\n", cert.Subject.CommonName)
	}
}

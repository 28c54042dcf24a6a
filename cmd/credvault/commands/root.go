package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"credvault/internal/app"
)

// session is the per-invocation state shared by subcommands.
type session struct {
	v    *viper.Viper
	cfg  app.Config
	wire *app.Wire
}

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Each call gets fresh flag and config
// state.
func NewRootCmd() *cobra.Command {
	s := &session{v: app.NewViper()}

	root := &cobra.Command{
		Use:           "credvault",
		Short:         "Manage the account key and bridge certificate",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(s.v)
			if err != nil {
				return err
			}
			logger, err := app.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			w, err := app.NewWire(cfg, logger)
			if err != nil {
				return err
			}
			s.cfg, s.wire = cfg, w
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if s.wire == nil {
				return nil
			}
			return s.wire.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.String("home", "", "credential dir (default ~/.credvault)")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.Int("work-factor", 0, "scrypt log2(N) for newly sealed keys (default 18)")
	flags.String("metrics-file", "", "write Prometheus metrics to this textfile on exit")
	for key, name := range map[string]string{
		"home":         "home",
		"log_level":    "log-level",
		"work_factor":  "work-factor",
		"metrics_file": "metrics-file",
	} {
		// Only explicitly set flags override env and file values.
		_ = s.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		statusCmd(s),
		loadCmd(s),
		importCmd(s),
		passwdCmd(s),
		exportCmd(s),
		createCmd(s),
	)
	return root
}

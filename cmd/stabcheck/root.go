package main

import (
	"github.com/spf13/cobra"
)

const envPrefix = "STABCHECK_"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stabcheck [command] [flags]",
		Short: "Check Pauli matrices and stabiliser state vectors.",
		Long: `stabcheck reads YAML documents of complex matrices or state vectors and reports
which of them are Pauli operators or stabiliser states, printing the canonical form
of every stabiliser state it finds.

Entries are complex literals such as "1", "-1i" or "0.5+0.5i". Settings come from
defaults, an optional --config file, STABCHECK_* environment variables and flags,
in increasing priority.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "YAML config file.")
	flags.Bool("allow-global-factor", false, "Accept inputs that differ from the canonical form by a nonzero factor.")
	flags.Float64("tolerance", 0, "Distance below which two phases are considered equal.")
	flags.IntP("workers", "w", 0, "Number of concurrent checks.")

	root.AddCommand(newPauliCmd(), newStateCmd())

	return root
}

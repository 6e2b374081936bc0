package main

import (
	"context"
	"fmt"
	"io"

	stabiliser "github.com/WilfredSalmon/Stabiliser"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/theapemachine/errnie"
)

// errRejected is returned when at least one input fails its check.
var errRejected = errors.New("some inputs were rejected")

// dumper prints the fields of a canonical form rather than its String summary.
var dumper = &spew.ConfigState{Indent: "  ", DisableMethods: true, SortKeys: true}

func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state <file>",
		Short: "Check which state vectors are stabiliser states.",
		Example: `  stabcheck state vectors.yaml
  STABCHECK_ALLOW_GLOBAL_FACTOR=true stabcheck state --dump vectors.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dump, _ := cmd.Flags().GetBool("dump")
			return runState(cmd, args[0], dump, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Bool("dump", false, "Dump the full canonical form of each stabiliser state.")

	return cmd
}

func newPauliCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "pauli <file>",
		Short:   "Check which matrices are Pauli operators.",
		Example: "  stabcheck pauli matrices.yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPauli(cmd, args[0], cmd.OutOrStdout())
		},
	}
}

func runState(cmd *cobra.Command, path string, dump bool, out io.Writer) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	vectors, err := readVectors(path)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	q := stabiliser.NewQ(ctx, cfg.Workers, cfg)
	defer q.Close()

	results, err := q.CheckStates(ctx, vectors)
	if err != nil {
		return err
	}

	rejected := 0

	for i, result := range results {
		if result.Error != nil {
			rejected++
			fmt.Fprintf(out, "vector %d: error: %v\n", i, result.Error)

			continue
		}

		report := result.Value.(stabiliser.StateReport)
		if !report.Valid {
			rejected++
			fmt.Fprintf(out, "vector %d: not a stabiliser state: %s\n", i, report.Reason)

			continue
		}

		fmt.Fprintf(out, "vector %d: %v\n", i, report.State)

		if dump {
			dumper.Fdump(out, report.State)
		}
	}

	errnie.Info("stabcheck state - %d of %d vectors rejected", rejected, len(results))

	if rejected > 0 {
		return errors.Wrapf(errRejected, "%d of %d vectors", rejected, len(results))
	}

	return nil
}

func runPauli(cmd *cobra.Command, path string, out io.Writer) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	matrices, err := readMatrices(path)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	q := stabiliser.NewQ(ctx, cfg.Workers, cfg)
	defer q.Close()

	results, err := q.CheckPaulis(ctx, matrices)
	if err != nil {
		return err
	}

	rejected := 0

	for i, result := range results {
		if result.Error != nil {
			rejected++
			fmt.Fprintf(out, "matrix %d: error: %v\n", i, result.Error)

			continue
		}

		report := result.Value.(stabiliser.PauliReport)
		if !report.Valid {
			rejected++
			fmt.Fprintf(out, "matrix %d: not a Pauli operator\n", i)

			continue
		}

		fmt.Fprintf(out, "matrix %d: %v (factor %v)\n", i, report.Pauli, report.Factor)
	}

	errnie.Info("stabcheck pauli - %d of %d matrices rejected", rejected, len(results))

	if rejected > 0 {
		return errors.Wrapf(errRejected, "%d of %d matrices", rejected, len(results))
	}

	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

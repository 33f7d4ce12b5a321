package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/go-txrecon/common/fixture"
	"github.com/spacemeshos/go-txrecon/log"
	"github.com/spacemeshos/go-txrecon/txfile"
)

func newGenCommand(fs afero.Fs, stdout io.Writer) *cobra.Command {
	var (
		seed      int64
		inputs    int
		outputs   int
		minScript int
		maxScript int
	)
	cmd := &cobra.Command{
		Use:   "gen [flags] <count> <txfile>",
		Short: "generate a file of random transactions",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return log.ErrBadArgs("count", args[0])
			}
			txs := fixture.NewTransactionsGenerator().
				WithSeed(seed).
				WithInputs(1, inputs).
				WithOutputs(1, outputs).
				WithScriptSize(minScript, maxScript).
				Generate(n)
			if err := txfile.Save(fs, args[1], txs); err != nil {
				return err
			}
			size := 0
			for _, tx := range txs {
				size += len(tx.Raw)
			}
			fmt.Fprintf(stdout, "wrote %d transactions (%s) to %s\n", n, humanize.IBytes(uint64(size)), args[1])
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "randomness seed")
	cmd.Flags().IntVar(&inputs, "max-inputs", 3, "maximal number of inputs per transaction")
	cmd.Flags().IntVar(&outputs, "max-outputs", 3, "maximal number of outputs per transaction")
	cmd.Flags().IntVar(&minScript, "min-script", 20, "minimal script size")
	cmd.Flags().IntVar(&maxScript, "max-script", 110, "maximal script size")
	return cmd
}

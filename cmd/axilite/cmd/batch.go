package cmd

import (
	"io"
	"os"

	chlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/batch"
	"github.com/sarchlab/axilite/slavemodel"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert command batches to and from per-cycle signal maps",
}

var batchFlags struct {
	in    string
	out   string
	words int
}

var batchEmitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Emit the master-to-slave cycles of a demo command batch",
	RunE: func(_ *cobra.Command, _ []string) error {
		w, err := openOut(batchFlags.out)
		if err != nil {
			return err
		}
		defer w.Close()

		h := batch.NewHandler()
		h.Submit(axi.SetUnsigneds(0, []uint32{1, 2, 3, 4}, "store block"))
		h.Submit(axi.NewWaitCommand(4))
		h.Submit(axi.GetUnsigneds(0, 4, "load block"))

		cycles := h.CommandCycles()
		chlog.Debug("emitting cycles", "count", len(cycles))

		return batch.WriteCycles(w, cycles)
	},
}

var batchApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply master-to-slave cycles to a memory slave",
	RunE: func(_ *cobra.Command, _ []string) error {
		r, err := openIn(batchFlags.in)
		if err != nil {
			return err
		}
		defer r.Close()

		cycles, err := batch.ReadCycles(r)
		if err != nil {
			return err
		}

		w, err := openOut(batchFlags.out)
		if err != nil {
			return err
		}
		defer w.Close()

		mem := slavemodel.NewMemDevice(batchFlags.words)
		s2m := batch.ApplyCycles(cycles, mem)
		chlog.Debug("applied cycles", "count", len(cycles))

		return batch.WriteCycles(w, s2m)
	},
}

func openOut(path string) (io.WriteCloser, error) {
	if path == "" {
		return os.Stdout, nil
	}

	return os.Create(path)
}

func openIn(path string) (io.ReadCloser, error) {
	if path == "" {
		return os.Stdin, nil
	}

	return os.Open(path)
}

func init() {
	batchCmd.PersistentFlags().StringVar(&batchFlags.in, "in", "",
		"input file, stdin when empty")
	batchCmd.PersistentFlags().StringVar(&batchFlags.out, "out", "",
		"output file, stdout when empty")
	batchCmd.PersistentFlags().IntVar(&batchFlags.words, "words", 1024,
		"number of words in the memory slave")

	batchCmd.AddCommand(batchEmitCmd)
	batchCmd.AddCommand(batchApplyCmd)
	rootCmd.AddCommand(batchCmd)
}

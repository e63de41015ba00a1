package cmd

import (
	"errors"
	"math/rand"
	"os"
	"strconv"

	chlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sarchlab/axilite/hw"
	"github.com/sarchlab/axilite/master"
	"github.com/sarchlab/axilite/monitoring"
	"github.com/sarchlab/axilite/sim"
	"github.com/sarchlab/axilite/slavemodel"
	"github.com/sarchlab/axilite/trace"
)

var errMismatch = errors.New("read data does not match the shadow model")

var stressFlags struct {
	words    int
	commands int
	seed     int64
	throttle float64
	latency  int
	timeout  int
	tracing  string
	monitor  bool
}

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Run randomized read/write traffic against a memory slave",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runStress()
	},
}

func init() {
	f := stressCmd.Flags()
	f.IntVar(&stressFlags.words, "words", 1024,
		"number of words in the memory slave")
	f.IntVar(&stressFlags.commands, "commands", 10000,
		"number of commands to run")
	f.Int64Var(&stressFlags.seed, "seed", defaultSeed(),
		"base seed for the throttles and the traffic")
	f.Float64Var(&stressFlags.throttle, "throttle", 0.8,
		"per-cycle handshake probability")
	f.IntVar(&stressFlags.latency, "latency", 1,
		"slave access latency in cycles")
	f.IntVar(&stressFlags.timeout, "timeout", 100000,
		"per-command timeout in cycles, 0 for none")
	f.StringVar(&stressFlags.tracing, "trace", "",
		"record transfers into this SQLite database")
	f.BoolVar(&stressFlags.monitor, "monitor", false,
		"serve simulation state over HTTP while running")

	rootCmd.AddCommand(stressCmd)
}

// defaultSeed lets a .env file pin the run without a flag.
func defaultSeed() int64 {
	s, err := strconv.ParseInt(os.Getenv("AXILITE_SEED"), 10, 64)
	if err != nil {
		return 1
	}

	return s
}

func runStress() error {
	engine := sim.NewSerialEngine()
	bus := hw.NewBus("DUT")
	mem := slavemodel.NewMemDevice(stressFlags.words)

	slavemodel.MakeBuilder().
		WithEngine(engine).
		WithBus(bus).
		WithDevice(mem).
		WithLatency(stressFlags.latency).
		WithThrottleProbability(stressFlags.throttle).
		WithSeed(stressFlags.seed + 100).
		Build("Slave")

	dispatcher := master.MakeBuilder().
		WithEngine(engine).
		WithBus(bus).
		WithThrottleProbability(stressFlags.throttle).
		WithSeed(stressFlags.seed).
		WithTimeoutCycles(stressFlags.timeout).
		Build("Master")

	if stressFlags.tracing != "" {
		recorder := trace.New(stressFlags.tracing)
		dispatcher.AcceptHook(recorder)
		defer recorder.Flush()
	}

	var bar *monitoring.ProgressBar
	if stressFlags.monitor {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(dispatcher)
		monitor.StartServer()
		bar = monitor.CreateProgressBar(
			"stress", 1*sim.GHz, uint64(stressFlags.commands))
	}

	chlog.Info("stress run starting",
		"commands", stressFlags.commands,
		"seed", stressFlags.seed,
		"throttle", stressFlags.throttle)

	rng := rand.New(rand.NewSource(stressFlags.seed))
	shadow := make(map[uint32]uint32)

	for i := 0; i < stressFlags.commands; i++ {
		addr := uint32(rng.Intn(stressFlags.words))

		if rng.Intn(2) == 0 {
			value := rng.Uint32()
			if err := dispatcher.Write(
				addr, []uint32{value}, "stress write"); err != nil {
				return err
			}
			shadow[addr] = value
		} else {
			values, err := dispatcher.Read(addr, 1, "stress read")
			if err != nil {
				return err
			}
			if values[0] != shadow[addr] {
				chlog.Error("read mismatch",
					"addr", addr,
					"got", values[0],
					"want", shadow[addr])
				return errMismatch
			}
		}

		if bar != nil {
			bar.CommandsFinished(1, engine.CurrentTime())
		}

		if (i+1)%1000 == 0 {
			chlog.Debug("stress progress",
				"commands", i+1,
				"simTime", engine.CurrentTime())
		}
	}

	chlog.Info("stress run passed",
		"commands", stressFlags.commands,
		"simSeconds", engine.CurrentTime())

	return nil
}

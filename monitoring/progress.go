package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/axilite/sim"
)

// A ProgressBar tracks a long sequence of bus commands and the simulated
// cycles they consume. The /api/progress route serves the bars as JSON.
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Freq      sim.Freq  `json:"freq"`

	TotalCommands    uint64 `json:"total_commands"`
	FinishedCommands uint64 `json:"finished_commands"`
	Cycles           uint64 `json:"cycles"`
}

// CommandsFinished records n more completed commands and updates the cycle
// count from the simulated time they completed at.
func (b *ProgressBar) CommandsFinished(n uint64, now sim.VTimeInSec) {
	b.Lock()
	defer b.Unlock()

	b.FinishedCommands += n
	b.Cycles = b.Freq.Cycle(now)
}

// CyclesPerCommand reports how many bus cycles an average command has taken
// so far. It is 0 before the first command completes.
func (b *ProgressBar) CyclesPerCommand() float64 {
	b.Lock()
	defer b.Unlock()

	if b.FinishedCommands == 0 {
		return 0
	}

	return float64(b.Cycles) / float64(b.FinishedCommands)
}

package master

import (
	"log"

	"github.com/sarchlab/axilite/axi"
)

// A completion is the cell a response channel fills in when the handshake
// for one expected beat completes. The dispatcher hands completions to the B
// and R channels in issue order and retires commands once all their cells
// are filled.
type completion struct {
	done     bool
	response axi.Response
}

func (c *completion) complete(r axi.Response) {
	if c.done {
		log.Panic("completion filled twice")
	}

	c.done = true
	c.response = r
}

// Package trace records completed channel transfers into a SQLite database,
// so that a run's bus activity can be inspected with any SQLite client after
// the fact.
package trace

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/axilite/master"
	"github.com/sarchlab/axilite/sim"
)

// A Recorder is a hook that buffers transfers and writes them to a SQLite
// database in batches. Register it on a dispatcher with AcceptHook.
type Recorder struct {
	db        *sql.DB
	buffer    []master.Transfer
	batchSize int
}

// New creates a recorder backed by path.sqlite3. An empty path picks a
// unique name. The file must not exist yet.
func New(path string) *Recorder {
	if path == "" {
		path = "axilite_trace_" + xid.New().String()
	}

	filename := path + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	r := NewWithDB(db)

	fmt.Fprintf(os.Stderr, "Trace database created: %s\n", filename)

	return r
}

// NewWithDB creates a recorder on an existing database connection.
func NewWithDB(db *sql.DB) *Recorder {
	r := &Recorder{
		db:        db,
		batchSize: 100000,
	}

	r.createTable()

	atexit.Register(func() { r.Flush() })

	return r
}

func (r *Recorder) createTable() {
	_, err := r.db.Exec(`
		CREATE TABLE transfers (
			time REAL,
			channel TEXT,
			value INTEGER,
			resp TEXT
		)`)
	if err != nil {
		panic(err)
	}
}

// Func buffers one transfer. It implements sim.Hook.
func (r *Recorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != master.HookPosTransfer {
		return
	}

	r.buffer = append(r.buffer, ctx.Item.(master.Transfer))
	if len(r.buffer) >= r.batchSize {
		r.Flush()
	}
}

// Flush writes all the buffered transfers in one transaction.
func (r *Recorder) Flush() {
	if len(r.buffer) == 0 {
		return
	}

	tx, err := r.db.Begin()
	if err != nil {
		panic(err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO transfers (time, channel, value, resp) " +
			"VALUES (?, ?, ?, ?)")
	if err != nil {
		panic(err)
	}
	defer stmt.Close()

	for _, t := range r.buffer {
		_, err := stmt.Exec(
			float64(t.Time), t.Channel, int64(t.Value), t.Resp.String())
		if err != nil {
			panic(err)
		}
	}

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	r.buffer = nil
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package restart implements an archive of well states used to restart simulations
package restart

import (
	"bytes"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ptaule/opm-simulators/wstate"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Archive holds well states saved at the end of time steps
type Archive struct {
	conn    *sqlx.DB // connection
	runID   string   // identifier of this run
	encType string   // encoder type: "gob" or "json"
}

// Record holds one archived state
type Record struct {
	RunID   string  `db:"run_id"`
	Step    int     `db:"step"`
	Time    float64 `db:"time"`
	EncType string  `db:"enctype"`
	Nwells  int     `db:"nwells"`
	Nseg    int     `db:"nseg"`
	Nperf   int     `db:"nperf"`
	Data    []byte  `db:"data"`
}

// Open opens or creates an archive at the given path
//  enctype -- "gob" or "json"
func Open(path, enctype string) (o *Archive, err error) {
	if enctype != "gob" && enctype != "json" {
		return nil, chk.Err("encoder type must be \"gob\" or \"json\". %q is invalid", enctype)
	}
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, chk.Err("cannot open archive %q:\n%v", path, err)
	}
	o = &Archive{conn: conn, runID: uuid.New().String(), encType: enctype}
	err = o.migrate()
	if err != nil {
		conn.Close()
		return nil, chk.Err("cannot create tables of archive %q:\n%v", path, err)
	}
	return
}

// Resume opens an archive and continues the run with given identifier
func Resume(path, enctype, runID string) (o *Archive, err error) {
	o, err = Open(path, enctype)
	if err != nil {
		return
	}
	if _, err = uuid.Parse(runID); err != nil {
		o.Close()
		return nil, chk.Err("run identifier %q is invalid:\n%v", runID, err)
	}
	o.runID = runID
	return
}

// Close closes the archive
func (o *Archive) Close() error {
	return o.conn.Close()
}

// RunID returns the identifier of this run
func (o *Archive) RunID() string { return o.runID }

// Save saves the state at the end of a time step, replacing any state saved at the same step
func (o *Archive) Save(step int, time float64, ws *wstate.WellState) (err error) {
	var buf bytes.Buffer
	enc := utl.NewEncoder(&buf, o.encType)
	err = ws.Encode(enc)
	if err != nil {
		return chk.Err("cannot encode state of step %d:\n%v", step, err)
	}
	rec := Record{
		RunID:   o.runID,
		Step:    step,
		Time:    time,
		EncType: o.encType,
		Nwells:  ws.NumWells(),
		Nseg:    ws.NumSegments(),
		Nperf:   ws.NumPerforations(),
		Data:    buf.Bytes(),
	}
	_, err = o.conn.NamedExec(`INSERT OR REPLACE INTO states (run_id, step, time, enctype, nwells, nseg, nperf, data)
		VALUES (:run_id, :step, :time, :enctype, :nwells, :nseg, :nperf, :data)`, &rec)
	if err != nil {
		return chk.Err("cannot save state of step %d:\n%v", step, err)
	}
	return
}

// Load loads the state saved at the end of a time step
func (o *Archive) Load(step int) (ws *wstate.WellState, time float64, err error) {
	var rec Record
	err = o.conn.Get(&rec, "SELECT * FROM states WHERE run_id = ? AND step = ?", o.runID, step)
	if err == sql.ErrNoRows {
		return nil, 0, chk.Err("there is no state for step %d in run %s", step, o.runID)
	}
	if err != nil {
		return nil, 0, chk.Err("cannot load state of step %d:\n%v", step, err)
	}
	ws, err = decode(&rec)
	return ws, rec.Time, err
}

// Latest loads the state of the last saved step. It returns step = -1 if the run has no states
func (o *Archive) Latest() (ws *wstate.WellState, step int, time float64, err error) {
	var rec Record
	err = o.conn.Get(&rec, "SELECT * FROM states WHERE run_id = ? ORDER BY step DESC LIMIT 1", o.runID)
	if err == sql.ErrNoRows {
		return nil, -1, 0, nil
	}
	if err != nil {
		return nil, -1, 0, chk.Err("cannot load latest state:\n%v", err)
	}
	ws, err = decode(&rec)
	return ws, rec.Step, rec.Time, err
}

// Steps returns the saved steps of this run in increasing order
func (o *Archive) Steps() (steps []int, err error) {
	err = o.conn.Select(&steps, "SELECT step FROM states WHERE run_id = ? ORDER BY step", o.runID)
	if err != nil {
		return nil, chk.Err("cannot list steps:\n%v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS states (
		run_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		time REAL NOT NULL,
		enctype TEXT NOT NULL,
		nwells INTEGER NOT NULL,
		nseg INTEGER NOT NULL,
		nperf INTEGER NOT NULL,
		data BLOB NOT NULL,
		PRIMARY KEY (run_id, step)
	);
	`
	_, err := o.conn.Exec(schema)
	return err
}

// decode decodes the state in a record
func decode(rec *Record) (ws *wstate.WellState, err error) {
	ws = new(wstate.WellState)
	dec := utl.NewDecoder(bytes.NewReader(rec.Data), rec.EncType)
	err = ws.Decode(dec)
	if err != nil {
		return nil, chk.Err("cannot decode state of step %d:\n%v", rec.Step, err)
	}
	return
}

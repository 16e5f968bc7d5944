// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sim implements the driver that steps well states through a well simulation
package sim

import (
	"bytes"
	"path/filepath"
	"time"

	"github.com/ptaule/opm-simulators/inp"
	"github.com/ptaule/opm-simulators/msw"
	"github.com/ptaule/opm-simulators/out"
	"github.com/ptaule/opm-simulators/restart"
	"github.com/ptaule/opm-simulators/wstate"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Main holds all data for a well simulation
type Main struct {
	Sim      *inp.Wsim           // simulation data
	Archive  *restart.Archive    // archive of states; may be nil
	States   []*wstate.WellState // [nsteps] state at the beginning of each step
	Resumed  bool                // first state continues the latest archived state
	SaveFile bool                // save one file per step in Sim.DirOut
	ShowMsg  bool                // show messages

	// internal
	first int // archive index of the first step
}

// NewMain returns a new Main structure
//  Input:
//   wsimfilepath -- simulation (.wsim) filename including full path
//   archive      -- sqlite file to archive states; "" means use Data.Archive; "none" disables archiving
//   runID        -- run to be resumed from the archive; "" starts a new run
//   erasePrev    -- erase previous results files
//   verbose      -- show messages
func NewMain(wsimfilepath, archive, runID string, erasePrev, verbose bool) (o *Main, err error) {

	// new Main object
	o = new(Main)
	o.ShowMsg = verbose

	// read input data
	o.Sim, err = inp.ReadWsim(wsimfilepath, true)
	if err != nil {
		return nil, err
	}
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s_*", o.Sim.DirOut, o.Sim.Key))
	}
	o.SaveFile = true
	if o.ShowMsg {
		io.Pf("> Well simulation (.wsim) file read\n")
	}

	// archive
	if archive == "" {
		archive = o.Sim.Data.Archive
	}
	if archive == "" || archive == "none" {
		return
	}
	if !filepath.IsAbs(archive) {
		archive = filepath.Join(o.Sim.DirOut, archive)
	}
	if runID == "" {
		o.Archive, err = restart.Open(archive, o.Sim.EncType)
	} else {
		o.Archive, err = restart.Resume(archive, o.Sim.EncType, runID)
		o.Resumed = true
	}
	if err != nil {
		return nil, err
	}
	if o.ShowMsg {
		io.Pf("> Archive %q opened. run = %s\n", archive, o.Archive.RunID())
	}
	return
}

// Run builds the well state of every step from the state of the previous step
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// previous state
	var prev *wstate.WellState
	if o.Resumed {
		var step int
		prev, step, _, err = o.Archive.Latest()
		if err != nil {
			return
		}
		o.first = step + 1
		if o.ShowMsg {
			io.Pf("> Continuing from archived step %d\n", step)
		}
	}

	// loop over steps
	wstate.ShowMsg = o.ShowMsg
	o.States = make([]*wstate.WellState, len(o.Sim.Steps))
	for idx, stp := range o.Sim.Steps {
		err = o.RunStep(idx, prev)
		if err != nil {
			return chk.Err("step %d (t = %g) failed:\n%v", idx, stp.Time, err)
		}
		prev = o.States[idx]
	}
	return
}

// RunStep builds the state of one step
//  Input:
//   idx  -- step index (in o.Sim.Steps)
//   prev -- state of the previous step; may be nil
func (o *Main) RunStep(idx int, prev *wstate.WellState) (err error) {

	// wells
	stp := o.Sim.Steps[idx]
	wells, err := msw.NewWells(stp, o.Sim.Data.Gather)
	if err != nil {
		return
	}

	// state
	ws, err := wstate.New(wells, &o.Sim.Reservoir, prev, nil)
	if err != nil {
		return
	}
	o.States[idx] = ws

	// message
	if o.ShowMsg {
		io.PfYel("\n> step %d : t = %g\n", idx, stp.Time)
		io.Pf("%v", out.WellTable(ws, 1e-5))
		for _, name := range out.WellNames(ws) {
			io.Pf("%v", out.SegmentTable(ws, name, 1e-5))
		}
		io.Pf("%v", out.Summary(ws))
	}

	// save
	if o.Archive != nil {
		err = o.Archive.Save(o.first+idx, stp.Time, ws)
		if err != nil {
			return
		}
	}
	if o.SaveFile {
		err = o.save(idx, ws)
	}
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// save saves the state of one step to a file in the output directory
func (o *Main) save(idx int, ws *wstate.WellState) (err error) {
	var buf bytes.Buffer
	err = ws.Encode(utl.NewEncoder(&buf, o.Sim.EncType))
	if err != nil {
		return chk.Err("cannot encode state of step %d:\n%v", idx, err)
	}
	io.WriteStringToFileD(o.Sim.DirOut, io.Sf("%s_%04d.%s", o.Sim.Key, idx, o.Sim.EncType), buf.String())
	return
}

// onexit closes the archive and prints final message with cpu time
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// close archive
	if o.Archive != nil {
		err = o.Archive.Close()
	}

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}

	// previous error has precedence
	if prevErr != nil {
		err = prevErr
	}
	return
}

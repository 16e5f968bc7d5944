// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.wsim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for well simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/msw
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"
	Gather  string `json:"gather"`  // perforation-to-segment operator: "sparse" or "dense"
	Archive string `json:"archive"` // [optional] sqlite file to archive states; e.g. restart.db
}

// ReservoirData holds the (read-only) reservoir state
type ReservoirData struct {
	Pres []float64 `json:"pressure"` // pressure at each cell
}

// ControlData holds one control of a well
type ControlData struct {
	Type   string    `json:"type"`   // "bhp", "thp", "rate", "resv", "grup"
	Target float64   `json:"target"` // target value
	Distr  []float64 `json:"distr"`  // [np] phase distribution (rate controls only)
}

// ControlsData holds all controls of a well
type ControlsData struct {
	Stopped bool           `json:"stopped"` // well is shut
	Current int            `json:"current"` // index of current control
	List    []*ControlData `json:"list"`    // all configured controls
}

// SegmentData holds segment data
type SegmentData struct {
	Outlet int   `json:"outlet"` // index of outlet segment; -1 for the top segment
	Perfs  []int `json:"perfs"`  // indices of perforations of this segment (local to well)
}

// WellData holds well data
type WellData struct {
	Name     string         `json:"name"`     // unique name
	Type     string         `json:"type"`     // "injector" or "producer"
	Np       int            `json:"np"`       // number of phases
	Cells    []int          `json:"cells"`    // [nperf] reservoir cell of each perforation
	Segments []*SegmentData `json:"segments"` // [nseg] segments; the first one is the top segment
	Controls ControlsData   `json:"controls"` // controls
	Extra    string         `json:"extra"`    // extra flags (in keycode format). ex: "!ms:false !temp:350"
}

// StepData holds the well network of one report step
type StepData struct {
	Time  float64     `json:"time"`  // time at the beginning of step
	Wells []*WellData `json:"wells"` // wells active during this step
}

// Wsim holds all well simulation data
type Wsim struct {

	// input
	Data      Data          `json:"data"`      // global data
	Reservoir ReservoirData `json:"reservoir"` // reservoir state
	Steps     []*StepData   `json:"steps"`     // report steps

	// derived
	Key     string // simulation key; e.g. producer01.wsim => producer01
	DirOut  string // directory to save results
	EncType string // encoder type
}

// Pressure returns the pressure at all cells
func (o *ReservoirData) Pressure() []float64 { return o.Pres }

// SetDefault sets defaults values
func (o *Data) SetDefault() {
	o.Encoder = "gob"
	o.Gather = "sparse"
}

// ReadWsim reads all well simulation data from a .wsim JSON file
func ReadWsim(wsimfilepath string, createDirOut bool) (o *Wsim, err error) {

	// new wsim
	o = new(Wsim)
	o.Data.SetDefault()

	// read file
	b, err := os.ReadFile(wsimfilepath)
	if err != nil {
		return nil, chk.Err("ReadWsim: cannot read well simulation file %q:\n%v", wsimfilepath, err)
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("ReadWsim: cannot unmarshal well simulation file %q:\n%v", wsimfilepath, err)
	}

	// filename key
	fn := filepath.Base(wsimfilepath)
	o.Key = io.FnKey(fn)

	// output directory
	o.DirOut = os.ExpandEnv(o.Data.DirOut)
	if o.DirOut == "" {
		o.DirOut = "/tmp/msw/" + o.Key
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// operator type
	if o.Data.Gather != "sparse" && o.Data.Gather != "dense" {
		return nil, chk.Err("ReadWsim: gather operator must be \"sparse\" or \"dense\". %q is invalid", o.Data.Gather)
	}

	// create directory
	if createDirOut {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}

	// check steps
	ncells := len(o.Reservoir.Pres)
	for i, stp := range o.Steps {
		names := make(map[string]bool)
		for _, w := range stp.Wells {
			if names[w.Name] {
				return nil, chk.Err("ReadWsim: well %q is repeated in step %d", w.Name, i)
			}
			names[w.Name] = true
			for _, c := range w.Cells {
				if c < 0 || c >= ncells {
					return nil, chk.Err("ReadWsim: well %q is connected to cell %d which is outside the reservoir (ncells = %d)", w.Name, c, ncells)
				}
			}
		}
	}
	return
}

// GetStep returns the step data or nil if idx is out of range
func (o *Wsim) GetStep(idx int) *StepData {
	if idx < 0 || idx >= len(o.Steps) {
		return nil
	}
	return o.Steps[idx]
}

// GetWell returns the well data with given name or nil if not found
func (o StepData) GetWell(name string) *WellData {
	for _, w := range o.Wells {
		if w.Name == name {
			return w
		}
	}
	return nil
}

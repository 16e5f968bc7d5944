// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package wstate implements the state of a set of multi-segment wells: pressures and phase rates
// of wells, segments and perforations stored in flat arrays
package wstate

import (
	"github.com/ptaule/opm-simulators/msw"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// ShowMsg activates messages about the initialisation of well states
var ShowMsg = false

// PressureSentinel is the pressure of segments and perforations not given an initial guess
const PressureSentinel = -1.0e100

// Reservoir defines the (read-only) reservoir state needed by wells
type Reservoir interface {
	Pressure() []float64 // pressure at each cell
}

// Cloner is implemented by legacy well handles that must be copied into the state
type Cloner interface {
	Clone() interface{}
}

// WellState holds the state of multi-segment wells
//
//   Phase rates are stored phase-fastest; e.g. the rate of phase p at perforation i is
//   PerfPhaseRates[Np*i+p]. Segments and perforations of well w are found with
//   SegmentedWellMap[name]; the top segment of well w is at TopSegmentLoc[w].
//
type WellState struct {

	// dimensions
	Np    int // number of phases
	Nseg  int // total number of segments
	Nperf int // total number of perforations

	// wells
	Bhp             []float64 // [nw] bottom-hole pressures
	Thp             []float64 // [nw] tubing-head pressures
	Temperature     []float64 // [nw] temperatures
	WellRates       []float64 // [nw*np] phase rates of wells
	CurrentControls []int     // [nw] index of current control of each well
	TopSegmentLoc   []int     // [nw] location of top segment of each well in segment arrays

	// segments
	SegPress      []float64 // [nseg] pressures of segments
	SegPhaseRates []float64 // [nseg*np] phase rates of segments

	// perforations
	PerfPress      []float64 // [nperf] pressures of perforations
	PerfPhaseRates []float64 // [nperf*np] phase rates of perforations

	// maps
	SegmentedWellMap SegmentedWellMap // name => location in segment and perforation arrays
	WellMap          WellMap          // name => location in well and perforation arrays

	// auxiliary
	legacy interface{} // legacy wells handle used by output routines
	stats  Stats       // statistics of last continuation
}

// New returns the state of wells at the beginning of a new time step
//  wells  -- current wells. all wells must have the same number of phases
//  res    -- reservoir state
//  prev   -- state of previous time step (with the same layout). use nil or an empty state to skip
//            the continuation of previous values
//  legacy -- legacy wells handle; copied if it implements Cloner
func New(wells []*msw.Well, res Reservoir, prev *WellState, legacy interface{}) (o *WellState, err error) {

	// new state
	o = new(WellState)
	o.legacy = legacy
	if c, ok := legacy.(Cloner); ok {
		o.legacy = c.Clone()
	}

	// no wells
	nw := len(wells)
	if nw == 0 {
		o.clear()
		return
	}

	// check wells
	pres := res.Pressure()
	o.Np, err = checkWells(wells, pres)
	if err != nil {
		return nil, chk.Err("cannot initialise well state:\n%v", err)
	}

	// dimensions
	for _, well := range wells {
		o.Nseg += well.NumSegments()
		o.Nperf += well.NumPerforations()
	}

	// allocate arrays
	o.alloc(nw)

	// index table and maps
	o.setTopology(wells)

	// initial guess
	for w, well := range wells {
		o.initialGuess(w, well, pres)
	}

	// controls set in the wells are the defaults
	for w, well := range wells {
		o.CurrentControls[w] = well.Ctrls.Current
	}

	// wells that have been there before
	o.carryOver(wells, prev)

	// message
	if ShowMsg {
		io.Pf(">> Number of wells = %d\n", nw)
		io.Pf(">> Number of segments = %d\n", o.Nseg)
		io.Pf(">> Number of perforations = %d\n", o.Nperf)
		if prev != nil && len(prev.SegmentedWellMap) > 0 {
			io.Pf(">> Previous state: %d wells carried, %d wells with same structure, %d controls kept\n", o.stats.Carried, o.stats.Matched, o.stats.Controls)
		}
	}
	return
}

// accessors ///////////////////////////////////////////////////////////////////////////////////////

// NumWells returns the number of wells
func (o *WellState) NumWells() int { return len(o.Bhp) }

// NumSegments returns the total number of segments
func (o *WellState) NumSegments() int { return o.Nseg }

// NumPerforations returns the total number of perforations
func (o *WellState) NumPerforations() int { return o.Nperf }

// WellRate returns the rate of phase p of well w
func (o *WellState) WellRate(w, p int) float64 { return o.WellRates[o.Np*w+p] }

// SegRate returns the rate of phase p of (global) segment s
func (o *WellState) SegRate(s, p int) float64 { return o.SegPhaseRates[o.Np*s+p] }

// PerfRate returns the rate of phase p of (global) perforation i
func (o *WellState) PerfRate(i, p int) float64 { return o.PerfPhaseRates[o.Np*i+p] }

// Legacy returns the legacy wells handle given to New
func (o *WellState) Legacy() interface{} { return o.legacy }

// Stats returns the statistics of the continuation performed by New
func (o *WellState) Stats() Stats { return o.stats }

// IsEmpty tells whether this state has no wells
func (o *WellState) IsEmpty() bool { return o == nil || len(o.SegmentedWellMap) == 0 }

// copy and encoding ///////////////////////////////////////////////////////////////////////////////

// GetCopy returns a deep copy of this state. The legacy handle is shared
func (o *WellState) GetCopy() *WellState {
	c := &WellState{
		Np:               o.Np,
		Nseg:             o.Nseg,
		Nperf:            o.Nperf,
		Bhp:              append([]float64{}, o.Bhp...),
		Thp:              append([]float64{}, o.Thp...),
		Temperature:      append([]float64{}, o.Temperature...),
		WellRates:        append([]float64{}, o.WellRates...),
		CurrentControls:  append([]int{}, o.CurrentControls...),
		TopSegmentLoc:    append([]int{}, o.TopSegmentLoc...),
		SegPress:         append([]float64{}, o.SegPress...),
		SegPhaseRates:    append([]float64{}, o.SegPhaseRates...),
		PerfPress:        append([]float64{}, o.PerfPress...),
		PerfPhaseRates:   append([]float64{}, o.PerfPhaseRates...),
		SegmentedWellMap: make(SegmentedWellMap, len(o.SegmentedWellMap)),
		WellMap:          make(WellMap, len(o.WellMap)),
		legacy:           o.legacy,
		stats:            o.stats,
	}
	for name, e := range o.SegmentedWellMap {
		c.SegmentedWellMap[name] = e.GetCopy()
	}
	for name, e := range o.WellMap {
		c.WellMap[name] = e
	}
	return c
}

// Encode encodes this state
func (o *WellState) Encode(enc utl.Encoder) (err error) {
	return enc.Encode(o)
}

// Decode decodes a state into this structure
func (o *WellState) Decode(dec utl.Decoder) (err error) {
	*o = WellState{}
	err = dec.Decode(o)
	if err != nil {
		return
	}
	if o.SegmentedWellMap == nil {
		o.SegmentedWellMap = make(SegmentedWellMap)
	}
	if o.WellMap == nil {
		o.WellMap = make(WellMap)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// alloc allocates all arrays and maps
func (o *WellState) alloc(nw int) {
	o.Bhp = make([]float64, nw)
	o.Thp = make([]float64, nw)
	o.Temperature = make([]float64, nw)
	o.WellRates = make([]float64, nw*o.Np)
	o.CurrentControls = make([]int, nw)
	o.TopSegmentLoc = make([]int, nw)
	o.SegPress = make([]float64, o.Nseg)
	o.SegPhaseRates = make([]float64, o.Nseg*o.Np)
	o.PerfPress = make([]float64, o.Nperf)
	o.PerfPhaseRates = make([]float64, o.Nperf*o.Np)
	for i := 0; i < o.Nseg; i++ {
		o.SegPress[i] = PressureSentinel
	}
	for i := 0; i < o.Nperf; i++ {
		o.PerfPress[i] = PressureSentinel
	}
	o.SegmentedWellMap = make(SegmentedWellMap, nw)
	o.WellMap = make(WellMap, nw)
}

// clear sets all dimensions to zero and empties all arrays and maps
func (o *WellState) clear() {
	o.Np, o.Nseg, o.Nperf = 0, 0, 0
	o.alloc(0)
	o.stats = Stats{}
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wstate

import (
	"github.com/ptaule/opm-simulators/inp"
	"github.com/ptaule/opm-simulators/msw"
)

// SmallRate is the magnitude of phase rates of open wells whose rates are not controlled
const SmallRate = 1e-14

// wellStatus selects how a well is initialised
type wellStatus int

// well statuses
const (
	wellStopped wellStatus = iota
	wellOpen
	numWellStatus
)

// guessRule tells which quantities of a well are given by the target of its current control
type guessRule struct {
	bhp  bool // bottom-hole pressure equals target
	thp  bool // tubing-head pressure equals target
	rate bool // phase rates equal target times phase distribution
}

// guessRules holds one rule per control type
var guessRules = [msw.NumControlTypes]guessRule{
	msw.BHP:           {bhp: true},
	msw.THP:           {thp: true},
	msw.ReservoirRate: {},
	msw.SurfaceRate:   {rate: true},
	msw.GroupRate:     {},
}

// guessFunc computes the initial guess of well w
type guessFunc func(o *WellState, w int, well *msw.Well, rule guessRule, pres []float64)

// guessFuncs holds one function per well status
var guessFuncs = [numWellStatus]guessFunc{
	wellStopped: guessStopped,
	wellOpen:    guessOpen,
}

// initialGuess sets the initial values of well w
func (o *WellState) initialGuess(w int, well *msw.Well, pres []float64) {
	o.Temperature[w] = well.Temperature
	if o.Temperature[w] == 0 {
		o.Temperature[w] = inp.StandardTemperature
	}
	status := wellOpen
	if well.Ctrls.IsStopped() {
		status = wellStopped
	}
	guessFuncs[status](o, w, well, guessRules[well.Ctrls.CurrentType()], pres)
}

// guessStopped initialises a shut well
//  1. rates: zero
//  2. bhp: target of bhp control, if applicable; otherwise pressure at first perforation cell
//  3. thp: target of thp control, if applicable; otherwise bhp
//  4. perforations and segments keep zero rates and sentinel pressures
func guessStopped(o *WellState, w int, well *msw.Well, rule guessRule, pres []float64) {
	if rule.bhp {
		o.Bhp[w] = well.Ctrls.CurrentTarget()
	} else {
		o.Bhp[w] = pres[well.Cells[0]]
	}
	if rule.thp {
		o.Thp[w] = well.Ctrls.CurrentTarget()
	} else {
		o.Thp[w] = o.Bhp[w]
	}
}

// guessOpen initialises an open well
//  1. rates: target times distribution for rate control; otherwise a small rate with the sign of
//     the well type (positive for injectors)
//  2. bhp: target of bhp control, if applicable; otherwise pressure at first perforation cell
//     shifted by the safety factor
//  3. thp: target of thp control, if applicable; otherwise bhp
//  4. perforations: well rates split evenly; pressure from connected cells
//  5. segments: the top segment takes bhp, the others take the pressure of their first
//     perforation (or of the first perforation downstream along their outlets); rates are
//     gathered from perforations
func guessOpen(o *WellState, w int, well *msw.Well, rule guessRule, pres []float64) {

	// auxiliary
	np := o.Np
	ctrl := well.Ctrls
	e := o.SegmentedWellMap[well.Name]
	factor := safetyFactor(well.Type)

	// rates
	if rule.rate {
		target := ctrl.CurrentTarget()
		distr := ctrl.CurrentDistr()
		for p := 0; p < np; p++ {
			o.WellRates[np*w+p] = target * distr[p]
		}
	} else {
		sign := 1.0
		if well.Type == msw.Producer {
			sign = -1.0
		}
		for p := 0; p < np; p++ {
			o.WellRates[np*w+p] = SmallRate * sign
		}
	}

	// bhp
	if rule.bhp {
		o.Bhp[w] = ctrl.CurrentTarget()
	} else {
		o.Bhp[w] = factor * pres[well.Cells[0]]
	}

	// thp
	if rule.thp {
		o.Thp[w] = ctrl.CurrentTarget()
	} else {
		o.Thp[w] = o.Bhp[w]
	}

	// perforations
	nperf := e.NumPerforations
	for i := 0; i < nperf; i++ {
		k := e.StartPerforation + i
		for p := 0; p < np; p++ {
			o.PerfPhaseRates[np*k+p] = o.WellRates[np*w+p] / float64(nperf)
		}
		if well.IsMultiSegmented() {
			o.PerfPress[k] = factor * pres[well.Cells[i]]
		} else {
			o.PerfPress[k] = pres[well.Cells[i]]
		}
	}

	// segment pressures. segments without perforations follow their outlets until a segment
	// with perforations or the top segment is found
	nseg := e.NumSegments
	o.SegPress[e.StartSegment] = o.Bhp[w]
	for s := 1; s < nseg; s++ {
		a := s
		for k := 0; a > 0 && e.NumPerforationsSegment[a] == 0 && k < nseg; k++ {
			a = well.Outlets[a]
		}
		if a <= 0 || e.NumPerforationsSegment[a] == 0 {
			o.SegPress[e.StartSegment+s] = o.Bhp[w]
			continue
		}
		first, _ := e.PerforationRange(a)
		o.SegPress[e.StartSegment+s] = o.PerfPress[first]
	}

	// segment rates
	vperf := make([]float64, nperf)
	vseg := make([]float64, nseg)
	for p := 0; p < np; p++ {
		for i := 0; i < nperf; i++ {
			vperf[i] = o.PerfPhaseRates[np*(e.StartPerforation+i)+p]
		}
		well.Gather.Apply(vseg, vperf)
		for s := 0; s < nseg; s++ {
			o.SegPhaseRates[np*(e.StartSegment+s)+p] = vseg[s]
		}
	}
}

// safetyFactor returns the factor shifting reservoir pressures towards the expected direction of flow
func safetyFactor(typ msw.WellType) float64 {
	if typ == msw.Injector {
		return 1.01
	}
	return 0.99
}

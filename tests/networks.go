// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tests

import (
	"github.com/ptaule/opm-simulators/inp"
)

// Reservoir returns a reservoir with pressures p(c) = p0 + dp・c
func Reservoir(ncells int, p0, dp float64) *inp.ReservoirData {
	res := &inp.ReservoirData{Pres: make([]float64, ncells)}
	for c := 0; c < ncells; c++ {
		res.Pres[c] = p0 + dp*float64(c)
	}
	return res
}

// Bhp returns the controls of a well under bottom-hole pressure control
func Bhp(target float64) inp.ControlsData {
	return inp.ControlsData{List: []*inp.ControlData{{Type: "bhp", Target: target}}}
}

// Thp returns the controls of a well under tubing-head pressure control
func Thp(target float64) inp.ControlsData {
	return inp.ControlsData{List: []*inp.ControlData{{Type: "thp", Target: target}}}
}

// Rate returns the controls of a well under surface rate control followed by a bhp limit
func Rate(target float64, distr []float64, bhpLimit float64) inp.ControlsData {
	return inp.ControlsData{List: []*inp.ControlData{
		{Type: "rate", Target: target, Distr: distr},
		{Type: "bhp", Target: bhpLimit},
	}}
}

// Stopped returns stopped controls
func Stopped(ctrls inp.ControlsData) inp.ControlsData {
	ctrls.Stopped = true
	return ctrls
}

// Well returns the data of a well
//  outlets -- [nseg] outlet of each segment; outlets[0] must be -1
//  nperfs  -- [nseg] number of perforations of each segment; perforations are numbered in
//             segment order and connected to cells cell0, cell0+1, ...
func Well(name, typ string, np int, outlets, nperfs []int, cell0 int, ctrls inp.ControlsData) *inp.WellData {
	w := &inp.WellData{Name: name, Type: typ, Np: np, Controls: ctrls}
	var j int
	for s, outlet := range outlets {
		seg := &inp.SegmentData{Outlet: outlet}
		for k := 0; k < nperfs[s]; k++ {
			seg.Perfs = append(seg.Perfs, j)
			w.Cells = append(w.Cells, cell0+j)
			j++
		}
		w.Segments = append(w.Segments, seg)
	}
	return w
}

// ProducerBhp3Seg returns a producer with 2 phases, 3 segments (top + 2 children) and
// 4 perforations (2 per child) under bhp control
//
//        [0] top (no perforations)
//       /   \
//     [1]   [2]
//     o o   o o   perforations 0,1 and 2,3
//
func ProducerBhp3Seg(name string, cell0 int, bhp float64) *inp.WellData {
	return Well(name, "producer", 2, []int{-1, 0, 0}, []int{0, 2, 2}, cell0, Bhp(bhp))
}

// InjectorRateChain returns an injector with 2 phases and a chain of segments, each one with
// one perforation, under surface rate control
func InjectorRateChain(name string, nseg, cell0 int, rate float64, distr []float64) *inp.WellData {
	outlets := make([]int, nseg)
	nperfs := make([]int, nseg)
	for s := 0; s < nseg; s++ {
		outlets[s] = s - 1
		nperfs[s] = 1
	}
	return Well(name, "injector", 2, outlets, nperfs, cell0, Rate(rate, distr, 400e5))
}

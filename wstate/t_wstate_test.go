// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wstate

import (
	"testing"

	"github.com/ptaule/opm-simulators/inp"
	"github.com/ptaule/opm-simulators/msw"
	"github.com/ptaule/opm-simulators/tests"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// checkTiling checks that the slices of all wells tile the segment and perforation arrays
func checkTiling(tst *testing.T, ws *WellState, wells []*msw.Well) {
	var nseg, nperf int
	for w, well := range wells {
		e, ok := ws.SegmentedWellMap[well.Name]
		if !ok {
			tst.Errorf("well %q is not in the map\n", well.Name)
			return
		}
		chk.Int(tst, "well number", e.WellNumber, w)
		chk.Int(tst, "start segment", e.StartSegment, nseg)
		chk.Int(tst, "start perforation", e.StartPerforation, nperf)
		chk.Int(tst, "top segment", ws.TopSegmentLoc[w], e.StartSegment)
		sum := 0
		for s := 0; s < e.NumSegments; s++ {
			chk.Int(tst, "start perforation in segment", e.StartPerforationSegment[s], sum)
			sum += e.NumPerforationsSegment[s]
		}
		chk.Int(tst, "sum of perforations in segments", sum, e.NumPerforations)
		m := ws.WellMap[well.Name]
		chk.Ints(tst, "well map", []int{m.Index, m.StartPerforation, m.NumPerforations}, []int{w, nperf, e.NumPerforations})
		nseg += e.NumSegments
		nperf += e.NumPerforations
	}
	chk.Int(tst, "nseg", ws.NumSegments(), nseg)
	chk.Int(tst, "nperf", ws.NumPerforations(), nperf)
	chk.Int(tst, "len(SegPress)", len(ws.SegPress), nseg)
	chk.Int(tst, "len(PerfPress)", len(ws.PerfPress), nperf)
	chk.Int(tst, "len(SegPhaseRates)", len(ws.SegPhaseRates), nseg*ws.Np)
	chk.Int(tst, "len(PerfPhaseRates)", len(ws.PerfPhaseRates), nperf*ws.Np)
}

func Test_wstate01(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("wstate01. one producer with three segments under bhp control")

	res := tests.Reservoir(4, 150e5, 1e5)
	wells := tests.Wells("sparse", tests.ProducerBhp3Seg("P1", 0, 200e5))
	ws, err := New(wells, res, nil, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	io.Pforan("bhp      = %v\n", ws.Bhp)
	io.Pforan("segpress = %v\n", ws.SegPress)
	io.Pforan("segrates = %v\n", ws.SegPhaseRates)

	// topology
	checkTiling(tst, ws, wells)
	e := ws.SegmentedWellMap["P1"]
	chk.Ints(tst, "start perforation of segments", e.StartPerforationSegment, []int{0, 0, 2})
	chk.Ints(tst, "perforations of segments", e.NumPerforationsSegment, []int{0, 2, 2})
	chk.Ints(tst, "top segments", ws.TopSegmentLoc, []int{0})
	chk.Ints(tst, "controls", ws.CurrentControls, []int{0})

	// well
	chk.Float64(tst, "bhp", 1e-17, ws.Bhp[0], 200e5)
	chk.Float64(tst, "thp", 1e-17, ws.Thp[0], 200e5)
	chk.Float64(tst, "temperature", 1e-12, ws.Temperature[0], 293.15)
	chk.Array(tst, "rates", 1e-30, ws.WellRates, []float64{-1e-14, -1e-14})

	// perforations
	pp := []float64{0.99 * 150e5, 0.99 * 151e5, 0.99 * 152e5, 0.99 * 153e5}
	chk.Array(tst, "perf pressures", 1e-8, ws.PerfPress, pp)
	for p := 0; p < 2; p++ {
		sum := 0.0
		for i := 0; i < 4; i++ {
			chk.Float64(tst, "perf rate", 1e-30, ws.PerfRate(i, p), -1e-14/4)
			sum += ws.PerfRate(i, p)
		}
		chk.Float64(tst, "sum of perf rates", 1e-28, sum, ws.WellRate(0, p))
	}

	// segments
	chk.Float64(tst, "top segment pressure", 1e-17, ws.SegPress[ws.TopSegmentLoc[0]], ws.Bhp[0])
	chk.Array(tst, "segment pressures", 1e-8, ws.SegPress, []float64{200e5, pp[0], pp[2]})
	for p := 0; p < 2; p++ {
		chk.Float64(tst, "top segment rate", 1e-28, ws.SegRate(0, p), ws.WellRate(0, p))
		chk.Float64(tst, "segment 1 rate", 1e-28, ws.SegRate(1, p), -5e-15)
		chk.Float64(tst, "segment 2 rate", 1e-28, ws.SegRate(2, p), -5e-15)
	}
}

func Test_wstate02(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("wstate02. tiling of several wells")

	res := tests.Reservoir(30, 100e5, 0.5e5)
	wells := tests.Wells("sparse",
		tests.ProducerBhp3Seg("P1", 0, 80e5),
		tests.InjectorRateChain("I1", 5, 4, 1000, []float64{1, 0}),
		tests.Well("P2", "producer", 2, []int{-1}, []int{3}, 9, tests.Thp(20e5)),
		tests.Well("P3", "producer", 2, []int{-1, 0, 1, 1}, []int{1, 3, 0, 2}, 12, tests.Bhp(90e5)),
	)
	ws, err := New(wells, res, nil, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	chk.Int(tst, "nw", ws.NumWells(), 4)
	chk.Int(tst, "nseg", ws.Nseg, 3+5+1+4)
	chk.Int(tst, "nperf", ws.Nperf, 4+5+3+6)
	chk.Ints(tst, "top segments", ws.TopSegmentLoc, []int{0, 3, 8, 9})
	checkTiling(tst, ws, wells)

	// top segment identity and pressure of segments with no perforations
	for w := range wells {
		chk.Float64(tst, "top segment pressure", 1e-17, ws.SegPress[ws.TopSegmentLoc[w]], ws.Bhp[w])
	}
	e := ws.SegmentedWellMap["P3"]
	chk.Float64(tst, "P3: segment 2 (empty)", 1e-17, ws.SegPress[e.StartSegment+2], ws.SegPress[e.StartSegment+1])
	first, _ := e.PerforationRange(3)
	chk.Float64(tst, "P3: segment 3", 1e-17, ws.SegPress[e.StartSegment+3], ws.PerfPress[first])
}

func Test_wstate03(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("wstate03. injector under rate control. sparse and dense operators")

	for _, kind := range []string{"sparse", "dense"} {

		res := tests.Reservoir(10, 100e5, 1e5)
		wells := tests.Wells(kind, tests.InjectorRateChain("I1", 4, 3, 1000, []float64{0.25, 0.75}))
		ws, err := New(wells, res, nil, nil)
		if err != nil {
			tst.Errorf("New failed:\n%v", err)
			return
		}
		io.Pforan("%s: segrates = %v\n", kind, ws.SegPhaseRates)

		// well
		chk.Array(tst, "rates", 1e-12, ws.WellRates, []float64{250, 750})
		chk.Float64(tst, "bhp", 1e-8, ws.Bhp[0], 1.01*103e5)
		chk.Float64(tst, "thp", 1e-17, ws.Thp[0], ws.Bhp[0])
		chk.Ints(tst, "controls", ws.CurrentControls, []int{0})

		// perforations
		for i := 0; i < 4; i++ {
			chk.Float64(tst, "perf pressure", 1e-8, ws.PerfPress[i], 1.01*res.Pres[3+i])
			chk.Float64(tst, "perf rate 0", 1e-12, ws.PerfRate(i, 0), 62.5)
			chk.Float64(tst, "perf rate 1", 1e-12, ws.PerfRate(i, 1), 187.5)
		}

		// segments: each segment gathers the perforations below it
		for s := 0; s < 4; s++ {
			n := float64(4 - s)
			chk.Float64(tst, "segment rate 0", 1e-12, ws.SegRate(s, 0), n*62.5)
			chk.Float64(tst, "segment rate 1", 1e-12, ws.SegRate(s, 1), n*187.5)
			if s > 0 {
				chk.Float64(tst, "segment pressure", 1e-17, ws.SegPress[s], ws.PerfPress[s])
			}
		}
		chk.Float64(tst, "top segment pressure", 1e-17, ws.SegPress[0], ws.Bhp[0])
	}
}

func Test_wstate04(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("wstate04. stopped wells")

	res := tests.Reservoir(20, 100e5, 1e5)
	wells := tests.Wells("sparse",
		tests.Well("S1", "producer", 2, []int{-1, 0}, []int{1, 1}, 0, tests.Stopped(tests.Bhp(50e5))),
		tests.Well("S2", "injector", 2, []int{-1, 0}, []int{1, 2}, 10, tests.Stopped(tests.Thp(30e5))),
		tests.Well("S3", "producer", 2, []int{-1}, []int{2}, 15, tests.Stopped(tests.Rate(100, []float64{1, 0}, 10e5))),
	)
	ws, err := New(wells, res, nil, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}

	// pressures
	chk.Array(tst, "bhp", 1e-17, ws.Bhp, []float64{50e5, 110e5, 115e5})
	chk.Array(tst, "thp", 1e-17, ws.Thp, []float64{50e5, 30e5, 115e5})

	// rates are zero and segments and perforations are not initialised
	chk.Array(tst, "well rates", 1e-17, ws.WellRates, make([]float64, 6))
	chk.Array(tst, "perf rates", 1e-17, ws.PerfPhaseRates, make([]float64, 2*ws.Nperf))
	chk.Array(tst, "seg rates", 1e-17, ws.SegPhaseRates, make([]float64, 2*ws.Nseg))
	for i := 0; i < ws.Nperf; i++ {
		chk.Float64(tst, "perf pressure", 1e-17, ws.PerfPress[i], PressureSentinel)
	}
	for s := 0; s < ws.Nseg; s++ {
		chk.Float64(tst, "seg pressure", 1e-17, ws.SegPress[s], PressureSentinel)
	}
	checkTiling(tst, ws, wells)
}

func Test_wstate05(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("wstate05. thp control and regular wells")

	res := tests.Reservoir(10, 100e5, 1e5)
	regular := tests.Well("R1", "producer", 1, []int{-1, 0}, []int{1, 1}, 5, tests.Thp(15e5))
	regular.Extra = "!ms:false !temp:350"
	wells := tests.Wells("sparse",
		tests.Well("M1", "injector", 1, []int{-1, 0}, []int{1, 1}, 0, tests.Thp(25e5)),
		regular,
	)
	ws, err := New(wells, res, nil, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}

	// multi-segment injector
	chk.Float64(tst, "M1: bhp", 1e-8, ws.Bhp[0], 1.01*100e5)
	chk.Float64(tst, "M1: thp", 1e-17, ws.Thp[0], 25e5)
	chk.Float64(tst, "M1: rate", 1e-30, ws.WellRates[0], 1e-14)
	chk.Array(tst, "M1: perf pressures", 1e-8, ws.PerfPress[:2], []float64{1.01 * 100e5, 1.01 * 101e5})

	// regular producer: perforation pressures are not shifted
	chk.Float64(tst, "R1: bhp", 1e-8, ws.Bhp[1], 0.99*105e5)
	chk.Float64(tst, "R1: thp", 1e-17, ws.Thp[1], 15e5)
	chk.Float64(tst, "R1: rate", 1e-30, ws.WellRates[1], -1e-14)
	chk.Float64(tst, "R1: temperature", 1e-17, ws.Temperature[1], 350)
	chk.Array(tst, "R1: perf pressures", 1e-17, ws.PerfPress[2:], []float64{105e5, 106e5})
	chk.Float64(tst, "R1: segment 1", 1e-17, ws.SegPress[3], 106e5)
}

func Test_wstate06(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("wstate06. malformed wells")

	res := tests.Reservoir(10, 100e5, 1e5)

	// unknown type
	wells := tests.Wells("sparse", tests.Well("X", "observer", 2, []int{-1}, []int{1}, 0, tests.Bhp(1e5)))
	ws, err := New(wells, res, nil, nil)
	if err == nil || ws != nil {
		tst.Errorf("New should have failed with unknown well type\n")
		return
	}
	io.Pforan("%v\n", err)

	// per-segment perforations not adding up to the number of perforations
	wells = tests.Wells("sparse", tests.Well("Y", "producer", 2, []int{-1, 0, 0}, []int{1, 1, 2}, 0, tests.Bhp(1e5)))
	wells[0].SegPerfs[2] = []int{2}
	ws, err = New(wells, res, nil, nil)
	if err == nil || ws != nil {
		tst.Errorf("New should have failed with inconsistent number of perforations\n")
		return
	}
	io.Pforan("%v\n", err)

	// different number of phases
	wells = tests.Wells("sparse",
		tests.Well("A", "producer", 2, []int{-1}, []int{1}, 0, tests.Bhp(1e5)),
		tests.Well("B", "producer", 3, []int{-1}, []int{1}, 1, tests.Bhp(1e5)),
	)
	_, err = New(wells, res, nil, nil)
	if err == nil {
		tst.Errorf("New should have failed with different number of phases\n")
		return
	}

	// repeated names
	wells = tests.Wells("sparse",
		tests.Well("A", "producer", 2, []int{-1}, []int{1}, 0, tests.Bhp(1e5)),
		tests.Well("A", "producer", 2, []int{-1}, []int{1}, 1, tests.Bhp(1e5)),
	)
	_, err = New(wells, res, nil, nil)
	if err == nil {
		tst.Errorf("New should have failed with repeated names\n")
		return
	}

	// negative temperature
	wells = tests.Wells("sparse", tests.Well("T", "producer", 2, []int{-1}, []int{1}, 0, tests.Bhp(1e5)))
	wells[0].Temperature = -1
	_, err = New(wells, res, nil, nil)
	if err == nil {
		tst.Errorf("New should have failed with negative temperature\n")
		return
	}

	// cell outside reservoir
	wells = tests.Wells("sparse", tests.Well("C", "producer", 2, []int{-1}, []int{2}, 9, tests.Bhp(1e5)))
	_, err = New(wells, res, nil, nil)
	if err == nil {
		tst.Errorf("New should have failed with cell outside reservoir\n")
	}
}

type legacyWells struct{ names []string }

func (o *legacyWells) Clone() interface{} {
	return &legacyWells{append([]string{}, o.names...)}
}

func Test_wstate07(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("wstate07. empty network and legacy handle")

	res := tests.Reservoir(10, 100e5, 1e5)
	prev, err := New(tests.Wells("sparse", tests.ProducerBhp3Seg("P1", 0, 200e5)), res, nil, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}

	legacy := &legacyWells{[]string{"P1"}}
	ws, err := New(nil, res, prev, legacy)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	chk.Int(tst, "nw", ws.NumWells(), 0)
	chk.Int(tst, "nseg", ws.NumSegments(), 0)
	chk.Int(tst, "nperf", ws.NumPerforations(), 0)
	chk.Int(tst, "len(SegPress)", len(ws.SegPress), 0)
	chk.Int(tst, "len(SegPhaseRates)", len(ws.SegPhaseRates), 0)
	chk.Int(tst, "len(PerfPress)", len(ws.PerfPress), 0)
	chk.Int(tst, "len(PerfPhaseRates)", len(ws.PerfPhaseRates), 0)
	chk.Int(tst, "len(WellRates)", len(ws.WellRates), 0)
	chk.Int(tst, "len(map)", len(ws.SegmentedWellMap), 0)
	chk.Int(tst, "len(wellmap)", len(ws.WellMap), 0)
	if !ws.IsEmpty() {
		tst.Errorf("state should be empty\n")
	}

	// legacy handle is copied
	cpy, ok := ws.Legacy().(*legacyWells)
	if !ok {
		tst.Errorf("legacy handle is missing\n")
		return
	}
	if cpy == legacy {
		tst.Errorf("legacy handle should have been cloned\n")
	}
	chk.Strings(tst, "legacy names", cpy.names, []string{"P1"})
}

func Test_wstate08(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("wstate08. copy")

	res := tests.Reservoir(10, 100e5, 1e5)
	ws, err := New(tests.Wells("dense", tests.ProducerBhp3Seg("P1", 2, 200e5)), res, nil, "handle")
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	cpy := ws.GetCopy()
	cpy.SegPress[1] = 1
	cpy.SegmentedWellMap["P1"].StartPerforationSegment[1] = 7
	chk.Float64(tst, "original segment pressure", 1e-8, ws.SegPress[1], 0.99*102e5)
	chk.Ints(tst, "original entry", ws.SegmentedWellMap["P1"].StartPerforationSegment, []int{0, 0, 2})
	if cpy.Legacy().(string) != "handle" {
		tst.Errorf("legacy handle should be shared by copies\n")
	}
}

// sanity check of fixtures
var _ Reservoir = (*inp.ReservoirData)(nil)

func Test_wstate09(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("wstate09. segments without perforations")

	//   [0] o         top
	//    |  \
	//   [2]  [3]      segment 3 has no perforations
	//   o o   \
	//    |
	//   [1]           no perforations; flows into segment 2
	res := tests.Reservoir(10, 100e5, 1e5)
	wells := tests.Wells("sparse", tests.Well("Q", "producer", 2, []int{-1, 2, 0, 0}, []int{1, 0, 2, 0}, 0, tests.Bhp(90e5)))
	ws, err := New(wells, res, nil, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	e := ws.SegmentedWellMap["Q"]
	first, _ := e.PerforationRange(2)
	chk.Float64(tst, "segment 0", 1e-17, ws.SegPress[0], 90e5)
	chk.Float64(tst, "segment 1", 1e-17, ws.SegPress[1], ws.PerfPress[first])
	chk.Float64(tst, "segment 2", 1e-17, ws.SegPress[2], ws.PerfPress[first])
	chk.Float64(tst, "segment 3", 1e-17, ws.SegPress[3], 90e5)
	if ws.SegPress[1] == ws.SegPress[0] {
		tst.Errorf("segment 1 must not take the pressure of segment 0\n")
	}

	// loop of empty segments in a hand-made well
	wells[0].Outlets = []int{-1, 3, 0, 1}
	wells[0].SegPerfs = [][]int{{0}, {}, {1, 2}, {}}
	ws, err = New(wells, res, nil, nil)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	chk.Float64(tst, "segment 1 in loop", 1e-17, ws.SegPress[1], 90e5)
	chk.Float64(tst, "segment 3 in loop", 1e-17, ws.SegPress[3], 90e5)
}

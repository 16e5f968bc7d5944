// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wstate

import (
	"github.com/ptaule/opm-simulators/msw"

	"github.com/cpmech/gosl/chk"
)

// SegmentedEntry holds the location of a well within the global segment and perforation arrays
//
//   perforations of segment s of this well:
//     StartPerforation + StartPerforationSegment[s] + [0, NumPerforationsSegment[s])
//
type SegmentedEntry struct {
	WellNumber              int   // index of well in per-well arrays
	StartSegment            int   // first segment of well in segment arrays
	NumSegments             int   // number of segments of well
	StartPerforation        int   // first perforation of well in perforation arrays
	NumPerforations         int   // number of perforations of well
	StartPerforationSegment []int // [nseg] first perforation of each segment, relative to StartPerforation
	NumPerforationsSegment  []int // [nseg] number of perforations of each segment
}

// SegmentedWellMap maps well names to their location in the segment and perforation arrays
type SegmentedWellMap map[string]*SegmentedEntry

// WellMapEntry holds the location of a well within the per-well and perforation arrays
type WellMapEntry struct {
	Index            int // index of well in per-well arrays
	StartPerforation int // first perforation of well
	NumPerforations  int // number of perforations of well
}

// WellMap maps well names to their location in the per-well and perforation arrays
type WellMap map[string]WellMapEntry

// GetCopy returns a deep copy of this entry
func (o SegmentedEntry) GetCopy() *SegmentedEntry {
	return &SegmentedEntry{
		o.WellNumber,
		o.StartSegment,
		o.NumSegments,
		o.StartPerforation,
		o.NumPerforations,
		append([]int{}, o.StartPerforationSegment...),
		append([]int{}, o.NumPerforationsSegment...),
	}
}

// PerforationRange returns the global range [start, end) of perforations of segment s
func (o *SegmentedEntry) PerforationRange(s int) (start, end int) {
	start = o.StartPerforation + o.StartPerforationSegment[s]
	end = start + o.NumPerforationsSegment[s]
	return
}

// checkWells verifies that wells can be laid out in flat arrays. It returns the number of phases
func checkWells(wells []*msw.Well, pres []float64) (np int, err error) {
	np = wells[0].Np
	names := make(map[string]bool, len(wells))
	for w, well := range wells {
		if well.Type != msw.Injector && well.Type != msw.Producer {
			return 0, chk.Err("well %q (#%d) must be an injector or a producer. type=%v is invalid", well.Name, w, well.Type)
		}
		if well.Np != np {
			return 0, chk.Err("all wells must have the same number of phases. well %q has %d phases != %d", well.Name, well.Np, np)
		}
		if names[well.Name] {
			return 0, chk.Err("well name %q is repeated", well.Name)
		}
		names[well.Name] = true

		if well.Temperature < 0 {
			return 0, chk.Err("well %q: temperature must not be negative. %g is invalid", well.Name, well.Temperature)
		}

		// segments and perforations
		nseg, nperf := well.NumSegments(), well.NumPerforations()
		if nseg < 1 || nperf < 1 {
			return 0, chk.Err("well %q must have at least one segment and one perforation. nseg=%d nperf=%d", well.Name, nseg, nperf)
		}
		sum := 0
		for _, perfs := range well.SegPerfs {
			sum += len(perfs)
		}
		if sum != nperf {
			return 0, chk.Err("well %q: the sum of perforations over segments (%d) must be equal to the number of perforations (%d)", well.Name, sum, nperf)
		}
		for i, c := range well.Cells {
			if c < 0 || c >= len(pres) {
				return 0, chk.Err("well %q: perforation %d is connected to cell %d outside the reservoir (ncells=%d)", well.Name, i, c, len(pres))
			}
		}

		// controls
		ctrl := well.Ctrls
		if ctrl == nil || ctrl.Num() < 1 {
			return 0, chk.Err("well %q must have at least one control", well.Name)
		}
		if ctrl.Current < 0 || ctrl.Current >= ctrl.Num() {
			return 0, chk.Err("well %q: current control %d is out of range [0, %d)", well.Name, ctrl.Current, ctrl.Num())
		}
		typ := ctrl.CurrentType()
		if typ < 0 || typ >= msw.NumControlTypes {
			return 0, chk.Err("well %q: control type %d is invalid", well.Name, typ)
		}
		if !ctrl.IsStopped() {
			if typ == msw.SurfaceRate && len(ctrl.CurrentDistr()) < np {
				return 0, chk.Err("well %q: rate control needs a distribution with %d phases. len(distr)=%d", well.Name, np, len(ctrl.CurrentDistr()))
			}
			if well.Gather == nil {
				return 0, chk.Err("well %q: perforation-to-segment operator is missing", well.Name)
			}
		}
	}
	return
}

// setTopology allocates the index table and the name maps
func (o *WellState) setTopology(wells []*msw.Well) {
	var startSegment, startPerforation int
	for w, well := range wells {
		e := &SegmentedEntry{
			WellNumber:       w,
			StartSegment:     startSegment,
			NumSegments:      well.NumSegments(),
			StartPerforation: startPerforation,
			NumPerforations:  well.NumPerforations(),
		}
		e.StartPerforationSegment = make([]int, e.NumSegments)
		e.NumPerforationsSegment = make([]int, e.NumSegments)
		start := 0
		for s, perfs := range well.SegPerfs {
			e.StartPerforationSegment[s] = start
			e.NumPerforationsSegment[s] = len(perfs)
			start += len(perfs)
		}
		chk.IntAssert(start, e.NumPerforations)

		o.SegmentedWellMap[well.Name] = e
		o.WellMap[well.Name] = WellMapEntry{w, startPerforation, e.NumPerforations}
		o.TopSegmentLoc[w] = startSegment

		startSegment += e.NumSegments
		startPerforation += e.NumPerforations
	}
	chk.IntAssert(startSegment, o.Nseg)
	chk.IntAssert(startPerforation, o.Nperf)
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wstate

import (
	"github.com/ptaule/opm-simulators/msw"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Stats holds statistics of the continuation from a previous state
type Stats struct {
	Carried  int // wells found in previous state: bhp and rates copied
	Matched  int // wells with the same number of segments and perforations: all values copied
	Controls int // wells whose previous control was kept
}

// carryOver copies values of wells that have been there before. The order of wells may have
// changed, so wells are matched by name.
//
//  NOTE: the structure of a well is considered unchanged when the numbers of segments and
//        perforations are the same; values are then copied position by position
func (o *WellState) carryOver(wells []*msw.Well, prev *WellState) {

	// skip if there is no previous state
	o.stats = Stats{}
	if prev.IsEmpty() {
		return
	}
	np := o.Np
	if prev.Np != np {
		if ShowMsg {
			io.Pforan("previous state has %d phases != %d. skipping continuation\n", prev.Np, np)
		}
		return
	}

	// for each current well
	for w, well := range wells {

		// find well in previous state
		old, found := prev.SegmentedWellMap[well.Name]
		if !found {
			if ShowMsg {
				io.Pforan("well %q is new\n", well.Name)
			}
			continue
		}
		cur, found := o.SegmentedWellMap[well.Name]
		if !found {
			chk.Panic("well %q must be present in the current well map", well.Name)
		}
		iold, inew := old.WellNumber, w

		// bhp and rates
		o.Bhp[inew] = prev.Bhp[iold]
		copy(o.WellRates[np*inew:np*(inew+1)], prev.WellRates[np*iold:np*(iold+1)])
		o.stats.Carried++

		// check structure
		if old.NumSegments != cur.NumSegments || old.NumPerforations != cur.NumPerforations {
			if ShowMsg {
				io.Pforan("well %q changed: nseg: %d => %d, nperf: %d => %d\n", well.Name, old.NumSegments, cur.NumSegments, old.NumPerforations, cur.NumPerforations)
			}
			continue
		}
		o.stats.Matched++

		// segments
		nseg := cur.NumSegments
		copy(o.SegPhaseRates[np*cur.StartSegment:np*(cur.StartSegment+nseg)], prev.SegPhaseRates[np*old.StartSegment:np*(old.StartSegment+nseg)])
		copy(o.SegPress[cur.StartSegment:cur.StartSegment+nseg], prev.SegPress[old.StartSegment:old.StartSegment+nseg])

		// perforations
		nperf := cur.NumPerforations
		copy(o.PerfPhaseRates[np*cur.StartPerforation:np*(cur.StartPerforation+nperf)], prev.PerfPhaseRates[np*old.StartPerforation:np*(old.StartPerforation+nperf)])
		copy(o.PerfPress[cur.StartPerforation:cur.StartPerforation+nperf], prev.PerfPress[old.StartPerforation:old.StartPerforation+nperf])

		// current control. if the set of controls has changed, the previous index may point to
		// another control, but it must be a valid one
		idx := prev.CurrentControls[iold]
		if idx >= 0 && idx < well.Ctrls.Num() {
			o.CurrentControls[inew] = idx
			o.stats.Controls++
		}
	}
}

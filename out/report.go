// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements reports of well states
package out

import (
	"bytes"
	"sort"

	"github.com/ptaule/opm-simulators/wstate"

	"github.com/cpmech/gosl/io"
)

// WellNames returns the names of wells sorted by their index in the well arrays
func WellNames(ws *wstate.WellState) (names []string) {
	names = make([]string, ws.NumWells())
	for name, e := range ws.SegmentedWellMap {
		names[e.WellNumber] = name
	}
	return
}

// WellTable returns a table with the state of all wells
//  bar -- 1e-5 to print pressures in bar; 1 to print in Pa
func WellTable(ws *wstate.WellState, bar float64) string {
	var b bytes.Buffer
	io.Ff(&b, "%-12s %5s %14s %14s %9s", "well", "ctrl", "bhp", "thp", "temp")
	for p := 0; p < ws.Np; p++ {
		io.Ff(&b, " %14s", io.Sf("q%d", p))
	}
	io.Ff(&b, "\n")
	for w, name := range WellNames(ws) {
		io.Ff(&b, "%-12s %5d %14.6g %14.6g %9.2f", name, ws.CurrentControls[w], ws.Bhp[w]*bar, ws.Thp[w]*bar, ws.Temperature[w])
		for p := 0; p < ws.Np; p++ {
			io.Ff(&b, " %14.6g", ws.WellRate(w, p))
		}
		io.Ff(&b, "\n")
	}
	return b.String()
}

// SegmentTable returns a table with the state of the segments and perforations of one well
//  bar -- 1e-5 to print pressures in bar; 1 to print in Pa
func SegmentTable(ws *wstate.WellState, name string, bar float64) string {
	e, ok := ws.SegmentedWellMap[name]
	if !ok {
		return io.Sf("well %q is not available\n", name)
	}
	var b bytes.Buffer
	io.Ff(&b, "%s: %d segments, %d perforations\n", name, e.NumSegments, e.NumPerforations)
	for s := 0; s < e.NumSegments; s++ {
		k := e.StartSegment + s
		io.Ff(&b, "  seg %3d %14.6g", s, pressure(ws.SegPress[k], bar))
		for p := 0; p < ws.Np; p++ {
			io.Ff(&b, " %14.6g", ws.SegRate(k, p))
		}
		io.Ff(&b, "\n")
		start, end := e.PerforationRange(s)
		for i := start; i < end; i++ {
			io.Ff(&b, "    perf %3d %12.6g", i-e.StartPerforation, pressure(ws.PerfPress[i], bar))
			for p := 0; p < ws.Np; p++ {
				io.Ff(&b, " %14.6g", ws.PerfRate(i, p))
			}
			io.Ff(&b, "\n")
		}
	}
	return b.String()
}

// Summary returns one line per well with its structure, sorted by name
func Summary(ws *wstate.WellState) string {
	names := WellNames(ws)
	sort.Strings(names)
	var b bytes.Buffer
	for _, name := range names {
		e := ws.SegmentedWellMap[name]
		io.Ff(&b, "%-12s #%-3d segments [%d,%d) perforations [%d,%d)\n", name, e.WellNumber,
			e.StartSegment, e.StartSegment+e.NumSegments, e.StartPerforation, e.StartPerforation+e.NumPerforations)
	}
	return b.String()
}

// pressure converts pressures; the sentinel of uninitialised pressures is kept
func pressure(p, bar float64) float64 {
	if p == wstate.PressureSentinel {
		return p
	}
	return p * bar
}

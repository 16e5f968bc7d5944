// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msw implements multi-segment well descriptors: type, controls, segment network,
// perforation connectivity and the perforation-to-segment operator
package msw

import (
	"strings"

	"github.com/ptaule/opm-simulators/inp"

	"github.com/cpmech/gosl/chk"
)

// WellType defines injectors and producers
type WellType int

// well types
const (
	UnknownType WellType = iota
	Injector
	Producer
)

// String returns the keyword of a well type
func (o WellType) String() string {
	switch o {
	case Injector:
		return "injector"
	case Producer:
		return "producer"
	}
	return "unknown"
}

// GetWellType returns the well type corresponding to a keyword. Unknown keywords return UnknownType
func GetWellType(key string) WellType {
	switch strings.ToLower(key) {
	case "injector", "inj":
		return Injector
	case "producer", "prod":
		return Producer
	}
	return UnknownType
}

// Well holds a multi-segment well
//
//   Segments are numbered from the top segment (0) downwards; Outlets[s] is the segment
//   receiving the flow of segment s. SegPerfs[s] lists the perforations (local indices) of
//   segment s; Cells[i] is the reservoir cell connected to perforation i.
//
type Well struct {
	Name        string    // unique name
	Type        WellType  // injector or producer
	Np          int       // number of phases
	Ctrls       *Controls // controls
	Outlets     []int     // [nseg] outlet segment of each segment; -1 for the top segment
	SegPerfs    [][]int   // [nseg][nperfInSeg] perforations of each segment
	Cells       []int     // [nperf] reservoir cell of each perforation
	MultiSeg    bool      // true multi-segment well (otherwise a regular well described by segments)
	Temperature float64   // well temperature [K]
	Gather      Gather    // perforation-to-segment operator
}

// New returns a new well from input data
//  gatherKind -- "sparse" or "dense"
func New(data *inp.WellData, gatherKind string) (o *Well, err error) {

	// basic data
	o = new(Well)
	o.Name = data.Name
	o.Type = GetWellType(data.Type)
	o.Np = data.Np
	if o.Name == "" {
		return nil, chk.Err("well name must be given")
	}
	if o.Np < 1 {
		return nil, chk.Err("well %q: number of phases must be positive. np=%d is invalid", o.Name, o.Np)
	}

	// controls
	o.Ctrls = new(Controls)
	o.Ctrls.Stopped = data.Controls.Stopped
	for i, c := range data.Controls.List {
		typ, err := GetControlType(c.Type)
		if err != nil {
			return nil, chk.Err("well %q: control %d:\n%v", o.Name, i, err)
		}
		if typ == SurfaceRate && len(c.Distr) != o.Np {
			return nil, chk.Err("well %q: rate control %d needs a distribution with %d phases. len(distr)=%d", o.Name, i, o.Np, len(c.Distr))
		}
		o.Ctrls.List = append(o.Ctrls.List, &Control{Type: typ, Target: c.Target, Distr: c.Distr})
	}
	err = o.Ctrls.Set(data.Controls.Current)
	if err != nil {
		return nil, chk.Err("well %q: cannot set current control:\n%v", o.Name, err)
	}

	// segments and perforations
	nseg := len(data.Segments)
	if nseg < 1 {
		return nil, chk.Err("well %q: at least the top segment must be given", o.Name)
	}
	if len(data.Cells) < 1 {
		return nil, chk.Err("well %q: at least one perforation must be given", o.Name)
	}
	o.Cells = data.Cells
	o.Outlets = make([]int, nseg)
	o.SegPerfs = make([][]int, nseg)
	owner := make([]int, len(o.Cells))
	for i := range owner {
		owner[i] = -1
	}
	for s, seg := range data.Segments {
		o.Outlets[s] = seg.Outlet
		o.SegPerfs[s] = seg.Perfs
		for _, j := range seg.Perfs {
			if j < 0 || j >= len(o.Cells) {
				return nil, chk.Err("well %q: segment %d refers to perforation %d which does not exist (nperf = %d)", o.Name, s, j, len(o.Cells))
			}
			if owner[j] >= 0 {
				return nil, chk.Err("well %q: perforation %d belongs to segments %d and %d", o.Name, j, owner[j], s)
			}
			owner[j] = s
		}
	}
	next := 0
	for s, seg := range data.Segments {
		for _, j := range seg.Perfs {
			if j != next {
				return nil, chk.Err("well %q: perforations must be numbered in segment order. segment %d has perforation %d but %d was expected", o.Name, s, j, next)
			}
			next++
		}
	}
	if next != len(o.Cells) {
		return nil, chk.Err("well %q: %d perforations do not belong to any segment", o.Name, len(o.Cells)-next)
	}

	// flags
	o.MultiSeg, o.Temperature, err = inp.GetWellFlags(data.Extra, nseg)
	if err != nil {
		return nil, chk.Err("well %q: cannot read extra flags:\n%v", o.Name, err)
	}

	// operator
	switch gatherKind {
	case "sparse":
		o.Gather, err = NewSparseGather(o.Outlets, o.SegPerfs, len(o.Cells))
	case "dense":
		o.Gather, err = NewDenseGather(o.Outlets, o.SegPerfs, len(o.Cells))
	default:
		err = chk.Err("gather operator %q is not available", gatherKind)
	}
	if err != nil {
		return nil, chk.Err("well %q: cannot build perforation-to-segment operator:\n%v", o.Name, err)
	}
	return
}

// NumSegments returns the number of segments
func (o *Well) NumSegments() int { return len(o.SegPerfs) }

// NumPerforations returns the number of perforations
func (o *Well) NumPerforations() int { return len(o.Cells) }

// IsMultiSegmented tells whether this is a true multi-segment well
func (o *Well) IsMultiSegmented() bool { return o.MultiSeg }

// NewWells returns all wells of a step
func NewWells(step *inp.StepData, gatherKind string) (wells []*Well, err error) {
	wells = make([]*Well, len(step.Wells))
	for i, data := range step.Wells {
		wells[i], err = New(data, gatherKind)
		if err != nil {
			return nil, err
		}
	}
	return
}

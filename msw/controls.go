// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msw

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// ControlType defines the kind of target of a well control
type ControlType int

// control types
const (
	BHP           ControlType = iota // bottom-hole pressure
	THP                              // tubing-head pressure
	ReservoirRate                    // reservoir volume rate
	SurfaceRate                      // surface volume rate
	GroupRate                        // rate imposed by group
	NumControlTypes
)

// String returns the keyword of a control type
func (o ControlType) String() string {
	switch o {
	case BHP:
		return "bhp"
	case THP:
		return "thp"
	case ReservoirRate:
		return "resv"
	case SurfaceRate:
		return "rate"
	case GroupRate:
		return "grup"
	}
	return "unknown"
}

// GetControlType returns the control type corresponding to a keyword
func GetControlType(key string) (typ ControlType, err error) {
	switch strings.ToLower(key) {
	case "bhp":
		return BHP, nil
	case "thp":
		return THP, nil
	case "resv", "reservoir_rate":
		return ReservoirRate, nil
	case "rate", "surface_rate":
		return SurfaceRate, nil
	case "grup", "group":
		return GroupRate, nil
	}
	return -1, chk.Err("control type %q is not available", key)
}

// Control holds one well control
type Control struct {
	Type   ControlType // kind of target
	Target float64     // target value
	Distr  []float64   // [np] phase distribution; used by rate controls
}

// Controls holds the controls of a well and which one is active
type Controls struct {
	List    []*Control // all configured controls
	Current int        // index of current control in List
	Stopped bool       // well is shut
}

// Num returns the number of configured controls
func (o *Controls) Num() int { return len(o.List) }

// IsStopped tells whether the well is shut or not
func (o *Controls) IsStopped() bool { return o.Stopped }

// Stop shuts the well
func (o *Controls) Stop() { o.Stopped = true }

// Open opens the well
func (o *Controls) Open() { o.Stopped = false }

// Set sets the current control
func (o *Controls) Set(idx int) (err error) {
	if idx < 0 || idx >= len(o.List) {
		return chk.Err("control index %d is out of range [0, %d)", idx, len(o.List))
	}
	o.Current = idx
	return
}

// CurrentType returns the type of current control
func (o *Controls) CurrentType() ControlType { return o.List[o.Current].Type }

// CurrentTarget returns the target of current control
func (o *Controls) CurrentTarget() float64 { return o.List[o.Current].Target }

// CurrentDistr returns the phase distribution of current control
func (o *Controls) CurrentDistr() []float64 { return o.List[o.Current].Distr }

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tests implements well networks and helpers used to test well states
package tests

import (
	"github.com/ptaule/opm-simulators/inp"
	"github.com/ptaule/opm-simulators/msw"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func Verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// Wells returns wells from input data. It panics on error
func Wells(gatherKind string, data ...*inp.WellData) (wells []*msw.Well) {
	wells = make([]*msw.Well, len(data))
	for i, d := range data {
		w, err := msw.New(d, gatherKind)
		if err != nil {
			chk.Panic("cannot build well %q:\n%v", d.Name, err)
		}
		wells[i] = w
	}
	return
}

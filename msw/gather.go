// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msw

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// Gather maps perforation quantities of one well to segment quantities
//
//   seg = G・perf    with G of size (nseg x nperf)
//
type Gather interface {
	Apply(seg, perf []float64) // computes seg := G・perf
}

// GatherFunc adapts a function to the Gather interface
type GatherFunc func(seg, perf []float64)

// Apply calls f(seg, perf)
func (f GatherFunc) Apply(seg, perf []float64) { f(seg, perf) }

// SparseGather implements Gather with a compressed-column matrix
type SparseGather struct {
	Nseg  int          // number of rows
	Nperf int          // number of columns
	T     la.Triplet   // triplet form of G
	M     *la.CCMatrix // compressed form of G
}

// NewSparseGather returns the sparse perforation-to-segment operator of a well
func NewSparseGather(outlets []int, segPerfs [][]int, nperf int) (o *SparseGather, err error) {
	nnz, err := countGatherEntries(outlets, segPerfs)
	if err != nil {
		return
	}
	o = new(SparseGather)
	o.Nseg, o.Nperf = len(outlets), nperf
	o.T.Init(o.Nseg, o.Nperf, nnz)
	err = eachGatherEntry(outlets, segPerfs, func(i, j int) {
		o.T.Put(i, j, 1)
	})
	if err != nil {
		return nil, err
	}
	o.M = o.T.ToMatrix(nil)
	return
}

// Apply computes seg := G・perf
func (o *SparseGather) Apply(seg, perf []float64) {
	la.SpMatVecMul(seg, 1, o.M, perf)
}

// DenseGather implements Gather with a dense matrix
type DenseGather struct {
	M *mat.Dense // G
}

// NewDenseGather returns the dense perforation-to-segment operator of a well
func NewDenseGather(outlets []int, segPerfs [][]int, nperf int) (o *DenseGather, err error) {
	if len(outlets) == 0 || nperf == 0 {
		return nil, chk.Err("dense operator needs at least one segment and one perforation. nseg=%d nperf=%d", len(outlets), nperf)
	}
	o = &DenseGather{M: mat.NewDense(len(outlets), nperf, nil)}
	err = eachGatherEntry(outlets, segPerfs, func(i, j int) {
		o.M.Set(i, j, o.M.At(i, j)+1)
	})
	if err != nil {
		return nil, err
	}
	return
}

// Apply computes seg := G・perf
func (o *DenseGather) Apply(seg, perf []float64) {
	res := mat.NewVecDense(len(seg), seg)
	res.MulVec(o.M, mat.NewVecDense(len(perf), perf))
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// eachGatherEntry calls fcn for every non-zero (i,j) of G. Segment i gathers the perforations of
// all segments in its sub-tree, i.e. perforation j contributes to its own segment and to every
// segment on the path towards the top segment
func eachGatherEntry(outlets []int, segPerfs [][]int, fcn func(i, j int)) (err error) {
	err = checkOutlets(outlets)
	if err != nil {
		return
	}
	nseg := len(outlets)
	for s, perfs := range segPerfs {
		for _, j := range perfs {
			for a, k := s, 0; a >= 0; a, k = outlets[a], k+1 {
				if k > nseg {
					return chk.Err("segment %d is in a loop of outlets", s)
				}
				fcn(a, j)
			}
		}
	}
	return
}

// countGatherEntries returns the number of non-zeros of G
func countGatherEntries(outlets []int, segPerfs [][]int) (nnz int, err error) {
	err = eachGatherEntry(outlets, segPerfs, func(i, j int) { nnz++ })
	return
}

// checkOutlets checks that segment 0 is the top segment and all outlets are valid segments
func checkOutlets(outlets []int) (err error) {
	nseg := len(outlets)
	if nseg == 0 {
		return
	}
	if outlets[0] != -1 {
		return chk.Err("outlet of top segment must be -1. %d is invalid", outlets[0])
	}
	for s := 1; s < nseg; s++ {
		if outlets[s] < 0 || outlets[s] >= nseg || outlets[s] == s {
			return chk.Err("outlet of segment %d is invalid: %d", s, outlets[s])
		}
	}
	return
}

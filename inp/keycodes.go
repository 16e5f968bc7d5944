// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// StandardTemperature is the default well temperature [K]
const StandardTemperature = 273.15 + 20

// GetWellFlags returns the flags in the extra string of a well
//  nseg -- number of segments; a well with more than one segment is multi-segmented by default
//  Flags:
//   !ms:<bool>  -- true multi-segment well
//   !temp:<K>   -- well temperature; must be positive
func GetWellFlags(extra string, nseg int) (multiseg bool, temperature float64, err error) {

	// defaults
	multiseg = nseg > 1
	temperature = StandardTemperature

	// no flags
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return
	}
	if !strings.HasPrefix(extra, "!") {
		return false, 0, chk.Err("flags must start with '!'. %q is invalid", extra)
	}

	// flag: multi-segment
	if s_ms, found := io.Keycode(extra, "ms"); found {
		multiseg, err = strconv.ParseBool(s_ms)
		if err != nil {
			return false, 0, chk.Err("flag !ms:%s is invalid:\n%v", s_ms, err)
		}
	}

	// flag: temperature
	if s_temp, found := io.Keycode(extra, "temp"); found {
		temperature, err = strconv.ParseFloat(s_temp, 64)
		if err != nil {
			return false, 0, chk.Err("flag !temp:%s is invalid:\n%v", s_temp, err)
		}
		if temperature <= 0 {
			return false, 0, chk.Err("temperature must be positive. !temp:%s is invalid", s_temp)
		}
	}
	return
}

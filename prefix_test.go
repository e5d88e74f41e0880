/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1ai

import (
	"fmt"
	"strings"
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
)

func TestStripPrefix(t *testing.T) {
	for i, tt := range []struct {
		raw, rest string
		sym       Symbology
	}{
		{"", "", NoSymbology},
		{"]C1", "", GS1128},
		{"]C10102658960000004", "0102658960000004", GS1128},
		{"]e00102658960000004", "0102658960000004", GS1DataBar},
		{"]d2" + gs + "3712", gs + "3712", GS1DataMatrix},
		{"]Q33712", "3712", GS1QRCode},
		{"]J13712", "3712", GS1DotCode},
		{"]d1", "]d1", NoSymbology},
		{"]C", "]C", NoSymbology},
		{"x]C13712", "x]C13712", NoSymbology},
		{"]C1]C13712", "]C13712", GS1128},
	} {
		t.Run(fmt.Sprintf("%02d_%q", i, tt.raw), func(t *testing.T) {
			w := expect.WrapT(t)
			rest, sym := StripPrefix(tt.raw)
			w.ShouldBeEqual(rest, tt.rest)
			w.ShouldBeEqual(sym, tt.sym)
		})
	}
}

func TestStripPrefix_custom(t *testing.T) {
	w := expect.WrapT(t)
	prefixes := append([]symbologyPrefix{{"SCAN:", CustomPrefix}, {"", CustomPrefix}},
		symbologyPrefixes...)

	rest, sym := stripPrefix("SCAN:3712", prefixes)
	w.ShouldBeEqual(rest, "3712")
	w.ShouldBeEqual(sym, CustomPrefix)

	rest, sym = stripPrefix("]C13712", prefixes)
	w.ShouldBeEqual(rest, "3712")
	w.ShouldBeEqual(sym, GS1128)

	rest, sym = stripPrefix("3712", prefixes)
	w.ShouldBeEqual(rest, "3712")
	w.ShouldBeEqual(sym, NoSymbology)
}

func TestSymbology_String(t *testing.T) {
	w := expect.WrapT(t)
	w.ShouldBeEqual(NoSymbology.String(), "none")
	w.ShouldBeEqual(GS1128.String(), "GS1-128")
	w.ShouldBeEqual(GS1DataMatrix.String(), "GS1 DataMatrix")
	w.ShouldBeEqual(CustomPrefix.String(), "custom")
	w.ShouldBeTrue(strings.HasSuffix(Symbology(42).String(), "42"))
}

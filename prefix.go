/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1ai

import (
	"strconv"
	"strings"
)

// Symbology identifies the barcode type a payload was read from, as announced
// by the ISO/IEC 15424 symbology identifier some scanners transmit first.
type Symbology int

const (
	// NoSymbology means the payload had no known prefix.
	NoSymbology Symbology = iota
	GS1128
	GS1DataBar
	GS1DataMatrix
	GS1QRCode
	GS1DotCode
	// CustomPrefix means the payload started with a prefix configured with
	// WithPrefixes.
	CustomPrefix
)

func (s Symbology) String() string {
	switch s {
	case NoSymbology:
		return "none"
	case GS1128:
		return "GS1-128"
	case GS1DataBar:
		return "GS1 DataBar"
	case GS1DataMatrix:
		return "GS1 DataMatrix"
	case GS1QRCode:
		return "GS1 QR Code"
	case GS1DotCode:
		return "GS1 DotCode"
	case CustomPrefix:
		return "custom"
	}
	return "Unknown symbology: " + strconv.Itoa(int(s))
}

type symbologyPrefix struct {
	literal   string
	symbology Symbology
}

// symbology identifiers for the GS1 variants of each carrier
var symbologyPrefixes = []symbologyPrefix{
	{"]C1", GS1128},
	{"]e0", GS1DataBar},
	{"]d2", GS1DataMatrix},
	{"]Q3", GS1QRCode},
	{"]J1", GS1DotCode},
}

// StripPrefix removes a leading GS1 symbology identifier from raw, returning
// the rest of the payload and the symbology it names. If raw doesn't start
// with a known identifier, it's returned unchanged with NoSymbology.
func StripPrefix(raw string) (string, Symbology) {
	return stripPrefix(raw, symbologyPrefixes)
}

func stripPrefix(raw string, prefixes []symbologyPrefix) (string, Symbology) {
	for _, p := range prefixes {
		if p.literal != "" && strings.HasPrefix(raw, p.literal) {
			return raw[len(p.literal):], p.symbology
		}
	}
	return raw, NoSymbology
}

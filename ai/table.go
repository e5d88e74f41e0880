/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package ai holds the closed table of GS1 Application Identifiers understood
// by the element string decoder.
//
// Only the AIs needed for retail item scanning are present: trade item
// identification, batch/lot and serial, dates, counts, net weight, length,
// area and volume measures, amount payable (with and without ISO 4217
// currency) and the dangerous goods flag. Anything else is not an AI as far as
// the decoder is concerned.
//
// AIs are either 2 or 4 characters. Measures and amounts use 4 character AIs
// whose last digit is the number of implied decimal places in the value, so
// "3103" is a net weight in kilograms with 3 decimal places. No 2 character AI
// is a prefix of a 4 character AI, so a lookup never has to choose between
// them.
package ai

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai/epc"
)

// Kind is the value grammar of an AI.
type Kind int

const (
	// FixedNumeric values have exactly Length digits.
	FixedNumeric Kind = iota
	// FixedImpliedDecimal values have exactly Length digits, of which the
	// last Decimals are fractional.
	FixedImpliedDecimal
	// VariableNumeric values have MinLength to Length digits.
	VariableNumeric
	// VariableText values have MinLength to Length characters from the GS1
	// AI encodable character set 82.
	VariableText
	// CurrencyVariableNumeric values start with a 3 digit ISO 4217 currency
	// code followed by MinLength to Length digits.
	CurrencyVariableNumeric
)

func (k Kind) String() string {
	switch k {
	case FixedNumeric:
		return "FixedNumeric"
	case FixedImpliedDecimal:
		return "FixedImpliedDecimal"
	case VariableNumeric:
		return "VariableNumeric"
	case VariableText:
		return "VariableText"
	case CurrencyVariableNumeric:
		return "CurrencyVariableNumeric"
	}
	return "Unknown kind: " + strconv.Itoa(int(k))
}

// Category is the meaning of an AI's value, used to find elements for the
// derived accessors.
type Category int

const (
	Identity Category = iota
	Content
	Lot
	Serial
	Date
	Count
	Weight
	Length
	Area
	LiquidVolume
	SolidVolume
	AmountPayable
	Flag
)

var categoryNames = [...]string{
	Identity:      "identity",
	Content:       "content",
	Lot:           "lot",
	Serial:        "serial",
	Date:          "date",
	Count:         "count",
	Weight:        "weight",
	Length:        "length",
	Area:          "area",
	LiquidVolume:  "liquidVolume",
	SolidVolume:   "solidVolume",
	AmountPayable: "amountPayable",
	Flag:          "flag",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown category: " + strconv.Itoa(int(c))
}

// CurrencyLength is the length of the ISO 4217 numeric currency code that
// prefixes CurrencyVariableNumeric values.
const CurrencyLength = 3

// Template describes the grammar of a single AI.
type Template struct {
	// AI is the literal identifier, e.g. "01" or "3103".
	AI    string
	Title string
	Kind  Kind
	// Length is the exact value length for fixed kinds, and the maximum for
	// variable kinds (not counting a currency code).
	Length    int
	MinLength int
	// Decimals is the number of implied decimal places coded in the AI.
	Decimals int
	Category Category
}

// IsFixed returns true if the template's value has a fixed length.
func (t Template) IsFixed() bool {
	return t.Kind == FixedNumeric || t.Kind == FixedImpliedDecimal
}

// HasDecimal returns true if elements for this template carry a decimal value.
func (t Template) HasDecimal() bool {
	return t.Kind == FixedImpliedDecimal || t.Category == AmountPayable
}

// MaxValueLength is the maximum number of characters following the AI.
func (t Template) MaxValueLength() int {
	if t.Kind == CurrencyVariableNumeric {
		return CurrencyLength + t.Length
	}
	return t.Length
}

// MinValueLength is the minimum number of characters following the AI.
func (t Template) MinValueLength() int {
	switch t.Kind {
	case FixedNumeric, FixedImpliedDecimal:
		return t.Length
	case CurrencyVariableNumeric:
		return CurrencyLength + t.MinLength
	}
	return t.MinLength
}

// ValidChar returns true if c may appear in this template's value.
func (t Template) ValidChar(c byte) bool {
	if t.Kind == VariableText {
		return epc.IsGS1AIChar(c)
	}
	return epc.IsDigit(c)
}

// family generates one template per decimal place count for measures and
// amounts, or a single template when it isn't parametric.
type family struct {
	prefix    string
	title     string
	kind      Kind
	length    int
	minLength int
	category  Category
	// maxDecimals < 0 means the AI is a plain literal
	maxDecimals int
}

func literal(ai, title string, kind Kind, length, minLength int, c Category) family {
	return family{prefix: ai, title: title, kind: kind, length: length,
		minLength: minLength, category: c, maxDecimals: -1}
}

func measure(prefix, title string, c Category, maxDecimals int) family {
	return family{prefix: prefix, title: title, kind: FixedImpliedDecimal,
		length: 6, category: c, maxDecimals: maxDecimals}
}

// The decimal ranges of the measures are limited so the value is always a
// whole number of the category's canonical unit.
var families = []family{
	literal("01", "GTIN", FixedNumeric, 14, 14, Identity),
	literal("02", "CONTENT", FixedNumeric, 14, 14, Content),
	literal("10", "BATCH/LOT", VariableText, 20, 0, Lot),
	literal("11", "PROD DATE", FixedNumeric, 6, 6, Date),
	literal("13", "PACK DATE", FixedNumeric, 6, 6, Date),
	literal("15", "BEST BEFORE or BEST BY", FixedNumeric, 6, 6, Date),
	literal("17", "USE BY or EXPIRY", FixedNumeric, 6, 6, Date),
	literal("21", "SERIAL", VariableText, 20, 0, Serial),
	literal("30", "VAR. COUNT", VariableNumeric, 8, 1, Count),
	literal("37", "COUNT", VariableNumeric, 8, 1, Count),
	measure("310", "NET WEIGHT (kg)", Weight, 3),
	measure("311", "LENGTH (m)", Length, 3),
	measure("314", "AREA (m2)", Area, 4),
	measure("315", "NET VOLUME (l)", LiquidVolume, 3),
	measure("316", "NET VOLUME (m3)", SolidVolume, 6),
	{prefix: "392", title: "PRICE", kind: VariableNumeric, length: 15,
		minLength: 1, category: AmountPayable, maxDecimals: 9},
	{prefix: "393", title: "PRICE", kind: CurrencyVariableNumeric, length: 15,
		minLength: 1, category: AmountPayable, maxDecimals: 9},
	literal("4321", "DANGEROUS GOODS", FixedNumeric, 1, 1, Flag),
}

var (
	templates = buildTable(families)

	// short holds the 2 character AIs, long the 4 character AIs
	short = map[string]Template{}
	long  = map[string]Template{}
)

func init() {
	for _, t := range templates {
		switch len(t.AI) {
		case 2:
			short[t.AI] = t
		case 4:
			long[t.AI] = t
		default:
			panic(fmt.Sprintf("AI %q must have 2 or 4 characters", t.AI))
		}
	}
	for code := range long {
		if _, ok := short[code[:2]]; ok {
			panic(fmt.Sprintf("AI %q is ambiguous with AI %q", code, code[:2]))
		}
	}
}

func buildTable(fams []family) []Template {
	var ts []Template
	for _, f := range fams {
		base := Template{
			Title:     f.title,
			Kind:      f.kind,
			Length:    f.length,
			MinLength: f.minLength,
			Category:  f.category,
		}
		if f.maxDecimals < 0 {
			base.AI = f.prefix
			ts = append(ts, base)
			continue
		}
		for d := 0; d <= f.maxDecimals; d++ {
			t := base
			t.AI = f.prefix + strconv.Itoa(d)
			t.Decimals = d
			ts = append(ts, t)
		}
	}
	return ts
}

// Lookup returns the template whose AI starts s, if any.
func Lookup(s string) (Template, bool) {
	if len(s) >= 2 {
		if t, ok := short[s[:2]]; ok {
			return t, true
		}
	}
	if len(s) >= 4 {
		if t, ok := long[s[:4]]; ok {
			return t, true
		}
	}
	return Template{}, false
}

// Get returns the template for exactly this AI.
func Get(code string) (Template, bool) {
	if t, ok := short[code]; ok {
		return t, true
	}
	t, ok := long[code]
	return t, ok
}

// All returns every template, ordered by AI.
func All() []Template {
	ts := make([]Template, len(templates))
	copy(ts, templates)
	sort.Slice(ts, func(i, j int) bool { return ts[i].AI < ts[j].AI })
	return ts
}

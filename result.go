/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1ai

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai/ai"
)

// Element is one decoded AI and its value.
//
// Most elements have a single value. Amounts payable with an ISO 4217
// currency have two: the currency code, then the amount digits. Measures and
// amounts also carry their value as an exact decimal, with the AI's implied
// decimal places applied.
type Element struct {
	template ai.Template
	values   []string
	decimal  decimal.NullDecimal
}

// newElement builds an element from a value already validated against t.
func newElement(t ai.Template, value string) Element {
	e := Element{template: t}
	digits := value
	if t.Kind == ai.CurrencyVariableNumeric {
		e.values = []string{value[:ai.CurrencyLength], value[ai.CurrencyLength:]}
		digits = value[ai.CurrencyLength:]
	} else {
		e.values = []string{value}
	}

	if t.HasDecimal() {
		if d, err := decimal.NewFromString(digits); err == nil {
			e.decimal = decimal.NewNullDecimal(d.Shift(-int32(t.Decimals)))
		}
	}
	return e
}

// AI returns the literal AI that was matched, e.g. "3103".
func (e Element) AI() string {
	return e.template.AI
}

// Template returns the table entry the element was decoded with.
func (e Element) Template() ai.Template {
	return e.template
}

// Category returns the meaning of the element's value.
func (e Element) Category() ai.Category {
	return e.template.Category
}

// Value returns the element's last captured value: the only value for most
// AIs, and the amount digits for amounts with a currency.
func (e Element) Value() string {
	if len(e.values) == 0 {
		return ""
	}
	return e.values[len(e.values)-1]
}

// Values returns a copy of the element's captured values, in order.
func (e Element) Values() []string {
	vs := make([]string, len(e.values))
	copy(vs, e.values)
	return vs
}

// Decimal returns the value with the AI's implied decimal places applied, if
// the element is a measure or an amount.
func (e Element) Decimal() (decimal.Decimal, bool) {
	return e.decimal.Decimal, e.decimal.Valid
}

// Len returns the number of input characters the element was decoded from,
// not counting a trailing separator.
func (e Element) Len() int {
	n := len(e.template.AI)
	for _, v := range e.values {
		n += len(v)
	}
	return n
}

// String formats the element in human readable form, e.g. "(3103)004646".
func (e Element) String() string {
	return "(" + e.template.AI + ")" + strings.Join(e.values, "")
}

// Result is the outcome of decoding a single payload: the elements that were
// recognised, and the spans of text that weren't, both in input order.
//
// A Result is never modified after it's returned; the accessors return copies.
type Result struct {
	symbology Symbology
	elements  []Element
	skipped   []string
	// reference for 2 digit years in dates; zero means the time of reading
	refTime time.Time
}

// Symbology returns the symbology named by the payload's prefix, if any.
func (r Result) Symbology() Symbology {
	return r.symbology
}

// Elements returns a copy of the decoded elements in input order.
func (r Result) Elements() []Element {
	es := make([]Element, len(r.elements))
	copy(es, r.elements)
	return es
}

// Skipped returns a copy of the spans of input that couldn't be decoded.
func (r Result) Skipped() []string {
	ss := make([]string, len(r.skipped))
	copy(ss, r.skipped)
	return ss
}

// IsEmpty returns true if nothing was decoded or skipped.
func (r Result) IsEmpty() bool {
	return len(r.elements) == 0 && len(r.skipped) == 0
}

// Complete returns true if at least one element was decoded and nothing was
// skipped.
func (r Result) Complete() bool {
	return len(r.elements) > 0 && len(r.skipped) == 0
}

// Find returns the first element with the given AI.
func (r Result) Find(code string) (Element, bool) {
	for _, e := range r.elements {
		if e.template.AI == code {
			return e, true
		}
	}
	return Element{}, false
}

// First returns the first element of the given category.
func (r Result) First(c ai.Category) (Element, bool) {
	for _, e := range r.elements {
		if e.template.Category == c {
			return e, true
		}
	}
	return Element{}, false
}

// String formats the decoded elements as a human readable element string,
// e.g. "(01)02658960000004(3103)004646".
func (r Result) String() string {
	b := &strings.Builder{}
	for _, e := range r.elements {
		b.WriteString(e.String())
	}
	return b.String()
}

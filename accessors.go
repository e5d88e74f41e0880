/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1ai

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai/ai"
	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai/epc"
	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai/quantity"
)

// The accessors below all look at the first element of the relevant AI or
// category, and report absence with a false second return rather than an
// error.

// measureUnits is the unit each measure category's AIs are expressed in.
var measureUnits = map[ai.Category]quantity.Unit{
	ai.Weight:       quantity.Kilogram,
	ai.Length:       quantity.Meter,
	ai.Area:         quantity.SquareMeter,
	ai.LiquidVolume: quantity.Liter,
	ai.SolidVolume:  quantity.CubicMeter,
}

// GTIN returns the trade item identifier from AI (01).
func (r Result) GTIN() (string, bool) {
	return r.value(ai.Identity)
}

// ContentGTIN returns the GTIN of the contained trade items from AI (02).
func (r Result) ContentGTIN() (string, bool) {
	return r.value(ai.Content)
}

// GTINCheckDigitValid returns true if there's a GTIN and its check digit is
// correct. Decoding doesn't check it.
func (r Result) GTINCheckDigitValid() bool {
	gtin, ok := r.GTIN()
	return ok && epc.ValidateGTIN(gtin) == nil
}

// Lot returns the batch or lot number from AI (10), which may be empty.
func (r Result) Lot() (string, bool) {
	return r.value(ai.Lot)
}

// Serial returns the serial number from AI (21).
func (r Result) Serial() (string, bool) {
	return r.value(ai.Serial)
}

// SGTIN combines the GTIN and serial into an epc.SGTIN, whose URI() is the
// EPC pure identity URI of the scanned item. companyPrefixLen is the length
// of the GS1 Company Prefix within the GTIN, which the GTIN itself doesn't
// reveal.
func (r Result) SGTIN(companyPrefixLen int) (epc.SGTIN, error) {
	gtin, ok := r.GTIN()
	if !ok {
		return epc.SGTIN{}, errors.New("no GTIN (01) in element string")
	}
	serial, ok := r.Serial()
	if !ok {
		return epc.SGTIN{}, errors.New("no serial (21) in element string")
	}
	return epc.NewSGTINFromAI(gtin, serial, companyPrefixLen)
}

// Count returns the count of items from AI (30) or (37).
func (r Result) Count() (int64, bool) {
	v, ok := r.value(ai.Count)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DangerousGoods returns the dangerous goods flag from AI (4321).
func (r Result) DangerousGoods() (bool, bool) {
	v, ok := r.value(ai.Flag)
	if !ok {
		return false, false
	}
	return v == "1", true
}

// Price is an amount payable, with the ISO 4217 numeric currency code if the
// barcode carried one.
type Price struct {
	Amount   decimal.Decimal
	Currency string
}

// HasCurrency returns true if the price carries a currency code.
func (p Price) HasCurrency() bool {
	return p.Currency != ""
}

func (p Price) String() string {
	if p.HasCurrency() {
		return p.Amount.String() + " " + p.Currency
	}
	return p.Amount.String()
}

// Price returns the amount payable from AI (392n) or (393n).
func (r Result) Price() (Price, bool) {
	e, ok := r.First(ai.AmountPayable)
	if !ok {
		return Price{}, false
	}
	amount, ok := e.Decimal()
	if !ok {
		return Price{}, false
	}
	p := Price{Amount: amount}
	if e.template.Kind == ai.CurrencyVariableNumeric {
		p.Currency = e.values[0]
	}
	return p, true
}

// Weight returns the net weight from AI (310n) in unit u, which must be a
// weight unit.
func (r Result) Weight(u quantity.Unit) (decimal.Decimal, bool) {
	return r.measure(ai.Weight, u)
}

// Length returns the length from AI (311n) in unit u, which must be a length
// unit.
func (r Result) Length(u quantity.Unit) (decimal.Decimal, bool) {
	return r.measure(ai.Length, u)
}

// Area returns the area from AI (314n) in unit u, which must be an area unit.
func (r Result) Area(u quantity.Unit) (decimal.Decimal, bool) {
	return r.measure(ai.Area, u)
}

// LiquidVolume returns the net volume from AI (315n) in unit u, which must be
// a liquid volume unit.
func (r Result) LiquidVolume(u quantity.Unit) (decimal.Decimal, bool) {
	return r.measure(ai.LiquidVolume, u)
}

// SolidVolume returns the net volume from AI (316n) in unit u, which must be a
// cubic unit.
func (r Result) SolidVolume(u quantity.Unit) (decimal.Decimal, bool) {
	return r.measure(ai.SolidVolume, u)
}

// WeightGrams returns the net weight in grams.
func (r Result) WeightGrams() (int64, bool) {
	return r.canonical(ai.Weight)
}

// LengthMillimeters returns the length in millimeters.
func (r Result) LengthMillimeters() (int64, bool) {
	return r.canonical(ai.Length)
}

// AreaSquareCentimeters returns the area in square centimeters.
func (r Result) AreaSquareCentimeters() (int64, bool) {
	return r.canonical(ai.Area)
}

// LiquidVolumeMilliliters returns the liquid volume in milliliters.
func (r Result) LiquidVolumeMilliliters() (int64, bool) {
	return r.canonical(ai.LiquidVolume)
}

// SolidVolumeCubicCentimeters returns the solid volume in cubic centimeters.
func (r Result) SolidVolumeCubicCentimeters() (int64, bool) {
	return r.canonical(ai.SolidVolume)
}

// Quantity returns the first measure of category c in the unit its AI is
// expressed in, e.g. kilograms for net weight.
func (r Result) Quantity(c ai.Category) (quantity.Quantity, bool) {
	u, ok := measureUnits[c]
	if !ok {
		return quantity.Quantity{}, false
	}
	e, ok := r.First(c)
	if !ok {
		return quantity.Quantity{}, false
	}
	d, ok := e.Decimal()
	if !ok {
		return quantity.Quantity{}, false
	}
	return quantity.New(d, u), true
}

func (r Result) measure(c ai.Category, u quantity.Unit) (decimal.Decimal, bool) {
	q, ok := r.Quantity(c)
	if !ok {
		return decimal.Zero, false
	}
	v, err := quantity.Convert(q.Value, q.Unit, u)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

func (r Result) canonical(c ai.Category) (int64, bool) {
	u, ok := measureUnits[c]
	if !ok {
		return 0, false
	}
	v, ok := r.measure(c, u.Family().Canonical())
	if !ok {
		return 0, false
	}
	return v.IntPart(), true
}

// ProductionDate returns the date from AI (11).
func (r Result) ProductionDate() (time.Time, bool) {
	return r.date("11")
}

// PackagingDate returns the date from AI (13).
func (r Result) PackagingDate() (time.Time, bool) {
	return r.date("13")
}

// BestBefore returns the date from AI (15).
func (r Result) BestBefore() (time.Time, bool) {
	return r.date("15")
}

// UseBy returns the expiration date from AI (17).
func (r Result) UseBy() (time.Time, bool) {
	return r.date("17")
}

// Date parses the YYMMDD value of the first element with the given date AI,
// resolving the century against the decoder's reference time, or the current
// time if it has none. It returns an error if there is no such element or its
// value isn't a date.
func (r Result) Date(code string) (time.Time, error) {
	e, ok := r.Find(code)
	if !ok {
		return time.Time{}, errors.Errorf("no AI (%s) in element string", code)
	}
	if e.Category() != ai.Date {
		return time.Time{}, errors.Errorf("AI (%s) is not a date", code)
	}
	ref := r.refTime
	if ref.IsZero() {
		ref = time.Now()
	}
	return ParseDate(e.Value(), ref)
}

func (r Result) date(code string) (time.Time, bool) {
	t, err := r.Date(code)
	return t, err == nil
}

// ParseDate parses a GS1 YYMMDD date, resolving the century relative to ref
// with the GS1 sliding window: years more than 50 ahead of ref's year belong
// to the previous century, and years 50 or more behind it to the next. A day
// of "00" means the last day of the month.
func ParseDate(yymmdd string, ref time.Time) (time.Time, error) {
	if len(yymmdd) != 6 || !epc.IsNumeric(yymmdd) {
		return time.Time{}, errors.Errorf("date %q must be 6 digits", yymmdd)
	}
	yy, _ := strconv.Atoi(yymmdd[0:2])
	mm, _ := strconv.Atoi(yymmdd[2:4])
	dd, _ := strconv.Atoi(yymmdd[4:6])
	if mm < 1 || mm > 12 {
		return time.Time{}, errors.Errorf("date %q has invalid month %d", yymmdd, mm)
	}

	century := ref.Year() - ref.Year()%100
	switch diff := yy - ref.Year()%100; {
	case diff >= 51:
		century -= 100
	case diff <= -50:
		century += 100
	}
	year := century + yy

	lastDay := time.Date(year, time.Month(mm)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if dd == 0 {
		dd = lastDay
	}
	if dd > lastDay {
		return time.Time{}, errors.Errorf("date %q has invalid day %d", yymmdd, dd)
	}
	return time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC), nil
}

func (r Result) value(c ai.Category) (string, bool) {
	e, ok := r.First(c)
	if !ok {
		return "", false
	}
	return e.Value(), true
}

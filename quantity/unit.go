/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package quantity converts decoded GS1 measures between units of the same
// family.
//
// Each family has a canonical unit, the smallest unit it supports, and every
// other unit is a power of ten multiple of it. Conversions shift the decimal
// point rather than multiply, so they're exact for any value.
package quantity

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Family is a set of units that measure the same thing.
type Family int

const (
	Weight Family = iota + 1
	Length
	Area
	LiquidVolume
	SolidVolume
)

func (f Family) String() string {
	switch f {
	case Weight:
		return "weight"
	case Length:
		return "length"
	case Area:
		return "area"
	case LiquidVolume:
		return "liquid volume"
	case SolidVolume:
		return "solid volume"
	}
	return "Unknown family: " + strconv.Itoa(int(f))
}

// Canonical returns the family's smallest unit.
func (f Family) Canonical() Unit {
	for u := Unit(1); u < numUnits; u++ {
		if units[u].family == f && units[u].exp == 0 {
			return u
		}
	}
	return Invalid
}

// Units returns the family's units, smallest first.
func (f Family) Units() []Unit {
	var us []Unit
	for u := Unit(1); u < numUnits; u++ {
		if units[u].family == f {
			us = append(us, u)
		}
	}
	return us
}

// Unit is a unit of measure; the zero value is Invalid.
type Unit int

const (
	Invalid Unit = iota

	Gram
	Decagram
	Hectogram
	Kilogram

	Millimeter
	Centimeter
	Decimeter
	Meter

	SquareCentimeter
	SquareDecimeter
	SquareMeter

	Milliliter
	Centiliter
	Deciliter
	Liter

	CubicCentimeter
	CubicDecimeter
	CubicMeter

	numUnits
)

type unitInfo struct {
	symbol string
	name   string
	family Family
	// one unit is 10^exp canonical units
	exp int32
}

var units = [numUnits]unitInfo{
	Invalid: {symbol: "?", name: "invalid"},

	Gram:      {"g", "gram", Weight, 0},
	Decagram:  {"dag", "decagram", Weight, 1},
	Hectogram: {"hg", "hectogram", Weight, 2},
	Kilogram:  {"kg", "kilogram", Weight, 3},

	Millimeter: {"mm", "millimeter", Length, 0},
	Centimeter: {"cm", "centimeter", Length, 1},
	Decimeter:  {"dm", "decimeter", Length, 2},
	Meter:      {"m", "meter", Length, 3},

	SquareCentimeter: {"cm2", "square-centimeter", Area, 0},
	SquareDecimeter:  {"dm2", "square-decimeter", Area, 2},
	SquareMeter:      {"m2", "square-meter", Area, 4},

	Milliliter: {"ml", "milliliter", LiquidVolume, 0},
	Centiliter: {"cl", "centiliter", LiquidVolume, 1},
	Deciliter:  {"dl", "deciliter", LiquidVolume, 2},
	Liter:      {"l", "liter", LiquidVolume, 3},

	CubicCentimeter: {"cm3", "cubic-centimeter", SolidVolume, 0},
	CubicDecimeter:  {"dm3", "cubic-decimeter", SolidVolume, 3},
	CubicMeter:      {"m3", "cubic-meter", SolidVolume, 6},
}

// IsValid returns true for every unit except Invalid and out of range values.
func (u Unit) IsValid() bool {
	return u > Invalid && u < numUnits
}

// Family returns the unit's family, or 0 for invalid units.
func (u Unit) Family() Family {
	if !u.IsValid() {
		return 0
	}
	return units[u].family
}

// Symbol returns the unit's short symbol, e.g. "kg".
func (u Unit) Symbol() string {
	if !u.IsValid() {
		return units[Invalid].symbol
	}
	return units[u].symbol
}

// Exponent returns n such that one u is 10^n canonical units of its family.
func (u Unit) Exponent() int32 {
	if !u.IsValid() {
		return 0
	}
	return units[u].exp
}

func (u Unit) String() string {
	if !u.IsValid() {
		return "Unknown unit: " + strconv.Itoa(int(u))
	}
	return units[u].name
}

// ParseUnit accepts a unit symbol ("kg") or name ("kilogram"), ignoring case
// and surrounding space. Plural names ("liters") and British spellings
// ("litre", "metre") are accepted too.
func ParseUnit(s string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("litre", "liter", "metre", "meter", " ", "-", "²", "2", "³", "3").Replace(key)
	for u := Unit(1); u < numUnits; u++ {
		info := units[u]
		if key == strings.ToLower(info.symbol) || key == info.name || key == info.name+"s" {
			return u, nil
		}
	}
	return Invalid, errors.Errorf("unknown unit %q", s)
}

// MarshalText encodes the unit as its symbol.
func (u Unit) MarshalText() ([]byte, error) {
	if !u.IsValid() {
		return nil, errors.Errorf("cannot marshal invalid unit %d", int(u))
	}
	return []byte(u.Symbol()), nil
}

// UnmarshalText decodes a unit symbol or name as accepted by ParseUnit.
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

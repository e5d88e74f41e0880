/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package quantity

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Quantity is an exact decimal amount of a unit.
type Quantity struct {
	Value decimal.Decimal
	Unit  Unit
}

// New returns a Quantity of value in unit u.
func New(value decimal.Decimal, u Unit) Quantity {
	return Quantity{Value: value, Unit: u}
}

// In converts q to unit u. It fails if u belongs to a different family.
func (q Quantity) In(u Unit) (Quantity, error) {
	v, err := Convert(q.Value, q.Unit, u)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: v, Unit: u}, nil
}

// String formats the quantity as "<value> <symbol>", e.g. "4.646 kg".
func (q Quantity) String() string {
	return q.Value.String() + " " + q.Unit.Symbol()
}

// Convert returns value, measured in from, measured in to instead.
//
// Both units must be valid and of the same family; converting a weight to
// liters is an error, never a coercion.
func Convert(value decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	if !from.IsValid() || !to.IsValid() {
		return decimal.Zero, errors.Errorf("cannot convert from %v to %v", from, to)
	}
	if from.Family() != to.Family() {
		return decimal.Zero, errors.Errorf("cannot convert %s (%s) to %s (%s)",
			from, from.Family(), to, to.Family())
	}
	return value.Shift(from.Exponent() - to.Exponent()), nil
}

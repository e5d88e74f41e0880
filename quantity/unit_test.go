/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package quantity

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
	"github.com/shopspring/decimal"
)

func TestParseUnit(t *testing.T) {
	for i, tt := range []struct {
		in   string
		unit Unit
	}{
		{"g", Gram}, {"gram", Gram}, {"grams", Gram}, {" KG ", Kilogram},
		{"dag", Decagram}, {"hg", Hectogram},
		{"mm", Millimeter}, {"metre", Meter}, {"meters", Meter},
		{"cm2", SquareCentimeter}, {"m²", SquareMeter}, {"square meter", SquareMeter},
		{"ml", Milliliter}, {"litre", Liter}, {"liters", Liter}, {"cl", Centiliter},
		{"cm3", CubicCentimeter}, {"m³", CubicMeter}, {"cubic-decimeter", CubicDecimeter},
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.in), func(t *testing.T) {
			w := expect.WrapT(t)
			u := w.ShouldHaveResult(ParseUnit(tt.in)).(Unit)
			w.ShouldBeEqual(u, tt.unit)
		})
	}

	for _, s := range []string{"", "lb", "ounce", "km", "m4", "?"} {
		t.Run("invalid_"+s, func(t *testing.T) {
			_, err := ParseUnit(s)
			expect.WrapT(t).ShouldFail(err)
		})
	}
}

func TestUnit_Text(t *testing.T) {
	w := expect.WrapT(t)
	for u := Unit(1); u < numUnits; u++ {
		b := w.ShouldHaveResult(u.MarshalText()).([]byte)
		var back Unit
		w.ShouldSucceed(back.UnmarshalText(b))
		w.As(u).ShouldBeEqual(back, u)
	}

	_, err := Invalid.MarshalText()
	w.ShouldFail(err)
	var u Unit
	w.ShouldFail(u.UnmarshalText([]byte("furlong")))
	w.ShouldBeEqual(u, Invalid)
}

func TestFamilies(t *testing.T) {
	w := expect.WrapT(t)
	w.ShouldBeEqual(Weight.Canonical(), Gram)
	w.ShouldBeEqual(Length.Canonical(), Millimeter)
	w.ShouldBeEqual(Area.Canonical(), SquareCentimeter)
	w.ShouldBeEqual(LiquidVolume.Canonical(), Milliliter)
	w.ShouldBeEqual(SolidVolume.Canonical(), CubicCentimeter)
	w.ShouldBeEqual(Family(0).Canonical(), Invalid)

	w.ShouldBeEqual(Weight.Units(), []Unit{Gram, Decagram, Hectogram, Kilogram})
	w.ShouldBeEqual(Area.Units(), []Unit{SquareCentimeter, SquareDecimeter, SquareMeter})

	w.ShouldBeEqual(Kilogram.Exponent(), int32(3))
	w.ShouldBeEqual(CubicMeter.Exponent(), int32(6))
	w.ShouldBeEqual(Liter.Family(), LiquidVolume)
	w.ShouldBeEqual(Unit(99).Family(), Family(0))
	w.ShouldBeEqual(Unit(99).String(), "Unknown unit: 99")
	w.ShouldBeEqual(Invalid.Symbol(), "?")
}

func TestConvert(t *testing.T) {
	type convTest struct {
		value    string
		from, to Unit
		want     string
	}

	for i, tt := range []convTest{
		{"4.646", Kilogram, Gram, "4646"},
		{"4646", Gram, Kilogram, "4.646"},
		{"1", Kilogram, Hectogram, "10"},
		{"125", Gram, Decagram, "12.5"},
		{"1.5", Meter, Centimeter, "150"},
		{"3", Millimeter, Decimeter, "0.03"},
		{"1", SquareMeter, SquareCentimeter, "10000"},
		{"250", SquareDecimeter, SquareMeter, "2.5"},
		{"0.75", Liter, Milliliter, "750"},
		{"33", Centiliter, Deciliter, "3.3"},
		{"0.000001", CubicMeter, CubicCentimeter, "1"},
		{"2", CubicDecimeter, CubicCentimeter, "2000"},
	} {
		t.Run(fmt.Sprintf("%02d_%s_to_%s", i, tt.from.Symbol(), tt.to.Symbol()), func(t *testing.T) {
			w := expect.WrapT(t)
			got := w.ShouldHaveResult(Convert(decimal.RequireFromString(tt.value), tt.from, tt.to)).(decimal.Decimal)
			w.As(got.String()).ShouldBeTrue(got.Equal(decimal.RequireFromString(tt.want)))
		})
	}
}

func TestConvert_crossFamily(t *testing.T) {
	w := expect.WrapT(t)
	one := decimal.NewFromInt(1)
	for from := Unit(1); from < numUnits; from++ {
		for to := Unit(1); to < numUnits; to++ {
			_, err := Convert(one, from, to)
			if from.Family() == to.Family() {
				w.As(fmt.Sprintf("%s->%s", from, to)).ShouldSucceed(err)
			} else {
				w.As(fmt.Sprintf("%s->%s", from, to)).ShouldFail(err)
			}
		}
	}
	_, err := Convert(one, Invalid, Gram)
	w.ShouldFail(err)
	_, err = Quantity{Value: one, Unit: Kilogram}.In(Liter)
	w.ShouldFail(err)
}

// Converting away from a unit and back never loses digits.
func TestConvert_roundTrip(t *testing.T) {
	w := expect.WrapT(t)
	for i := 0; i < 1000; i++ {
		v := decimal.New(rand.Int63n(1000000), -int32(rand.Intn(7)))
		from := Unit(1 + rand.Intn(int(numUnits)-1))
		fam := from.Family().Units()
		to := fam[rand.Intn(len(fam))]

		there := w.ShouldHaveResult(Convert(v, from, to)).(decimal.Decimal)
		back := w.ShouldHaveResult(Convert(there, to, from)).(decimal.Decimal)
		w.As(fmt.Sprintf("%s %s via %s", v, from, to)).ShouldBeTrue(back.Equal(v))
	}
}

func TestQuantity(t *testing.T) {
	w := expect.WrapT(t)
	q := New(decimal.RequireFromString("4.646"), Kilogram)
	w.ShouldBeEqual(q.String(), "4.646 kg")
	g := w.ShouldHaveResult(q.In(Gram)).(Quantity)
	w.ShouldBeEqual(g.String(), "4646 g")
}

/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai"
	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai/ai"
	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai/quantity"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// Config is the gs1scan configuration file.
//
//	prefixes = ["SCAN:"]
//	separator_aliases = ["<GS>", "\\F"]
//	format = "yaml"
//	workers = 4
//	company_prefix_length = 7
//
//	[units]
//	weight = "g"
//	liquid_volume = "ml"
type Config struct {
	Prefixes         []string `toml:"prefixes"`
	SeparatorAliases []string `toml:"separator_aliases"`
	Format           string   `toml:"format"`
	Workers          int      `toml:"workers"`
	// CompanyPrefixLength enables the SGTIN output when it's set, since the
	// split of a GTIN into company prefix and item reference isn't encoded
	// in the GTIN.
	CompanyPrefixLength int   `toml:"company_prefix_length"`
	Units               Units `toml:"units"`
}

// Units are the display units for measures in the output.
type Units struct {
	Weight       quantity.Unit `toml:"weight"`
	Length       quantity.Unit `toml:"length"`
	Area         quantity.Unit `toml:"area"`
	LiquidVolume quantity.Unit `toml:"liquid_volume"`
	SolidVolume  quantity.Unit `toml:"solid_volume"`
}

// DefaultConfig shows measures in the units their AIs are defined in.
func DefaultConfig() Config {
	return Config{
		Format:  formatJSON,
		Workers: runtime.NumCPU(),
		Units: Units{
			Weight:       quantity.Kilogram,
			Length:       quantity.Meter,
			Area:         quantity.SquareMeter,
			LiquidVolume: quantity.Liter,
			SolidVolume:  quantity.CubicMeter,
		},
	}
}

// LoadConfig reads the TOML file at path over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config")
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks the format, worker count, and that each display unit
// belongs to its measure's family.
func (c Config) Validate() error {
	if c.Format != formatJSON && c.Format != formatYAML {
		return errors.Errorf("format must be %q or %q, but is %q",
			formatJSON, formatYAML, c.Format)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, but is %d", c.Workers)
	}
	if n := c.CompanyPrefixLength; n != 0 && (n < 6 || n > 12) {
		return errors.Errorf("company_prefix_length must be in [6,12], but is %d", n)
	}
	for f, u := range c.Units.byFamily() {
		if !u.IsValid() {
			return errors.Errorf("no display unit for %s", f)
		}
		if u.Family() != f {
			return errors.Errorf("unit %s can't display %s", u, f)
		}
	}
	return nil
}

func (u Units) byFamily() map[quantity.Family]quantity.Unit {
	return map[quantity.Family]quantity.Unit{
		quantity.Weight:       u.Weight,
		quantity.Length:       u.Length,
		quantity.Area:         u.Area,
		quantity.LiquidVolume: u.LiquidVolume,
		quantity.SolidVolume:  u.SolidVolume,
	}
}

// For returns the display unit for a measure category.
func (u Units) For(c ai.Category) (quantity.Unit, bool) {
	switch c {
	case ai.Weight:
		return u.Weight, true
	case ai.Length:
		return u.Length, true
	case ai.Area:
		return u.Area, true
	case ai.LiquidVolume:
		return u.LiquidVolume, true
	case ai.SolidVolume:
		return u.SolidVolume, true
	}
	return quantity.Invalid, false
}

// DecoderOptions converts the config to decoder options.
func (c Config) DecoderOptions() []gs1ai.Option {
	return []gs1ai.Option{
		gs1ai.WithPrefixes(c.Prefixes...),
		gs1ai.WithSeparatorAliases(c.SeparatorAliases...),
	}
}

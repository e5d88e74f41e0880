/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai"
	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai/ai"
)

const dateLayout = "2006-01-02"

// document is the output for one payload.
type document struct {
	Input     string            `json:"input" yaml:"input"`
	Symbology string            `json:"symbology" yaml:"symbology"`
	Elements  []elementDoc      `json:"elements" yaml:"elements"`
	Skipped   []string          `json:"skipped" yaml:"skipped"`
	GTIN      string            `json:"gtin,omitempty" yaml:"gtin,omitempty"`
	GTINValid *bool             `json:"gtinValid,omitempty" yaml:"gtinValid,omitempty"`
	Lot       *string           `json:"lot,omitempty" yaml:"lot,omitempty"`
	Serial    *string           `json:"serial,omitempty" yaml:"serial,omitempty"`
	Count     *int64            `json:"count,omitempty" yaml:"count,omitempty"`
	Price     string            `json:"price,omitempty" yaml:"price,omitempty"`
	SGTIN     string            `json:"sgtin,omitempty" yaml:"sgtin,omitempty"`
	SGTIN96   *bool             `json:"sgtin96,omitempty" yaml:"sgtin96,omitempty"`
	Dates     map[string]string `json:"dates,omitempty" yaml:"dates,omitempty"`
	Measures  map[string]string `json:"measures,omitempty" yaml:"measures,omitempty"`
}

type elementDoc struct {
	AI      string   `json:"ai" yaml:"ai"`
	Title   string   `json:"title" yaml:"title"`
	Values  []string `json:"values" yaml:"values"`
	Decimal string   `json:"decimal,omitempty" yaml:"decimal,omitempty"`
}

var measureCategories = []ai.Category{
	ai.Weight, ai.Length, ai.Area, ai.LiquidVolume, ai.SolidVolume,
}

func newDocument(input string, r gs1ai.Result, cfg Config) document {
	doc := document{
		Input:     input,
		Symbology: r.Symbology().String(),
		Elements:  []elementDoc{},
		Skipped:   r.Skipped(),
	}
	if doc.Skipped == nil {
		doc.Skipped = []string{}
	}

	for _, e := range r.Elements() {
		ed := elementDoc{
			AI:     e.AI(),
			Title:  e.Template().Title,
			Values: e.Values(),
		}
		if d, ok := e.Decimal(); ok {
			ed.Decimal = d.String()
		}
		doc.Elements = append(doc.Elements, ed)

		if e.Category() == ai.Date {
			if t, err := r.Date(e.AI()); err == nil {
				if doc.Dates == nil {
					doc.Dates = map[string]string{}
				}
				if _, seen := doc.Dates[e.AI()]; !seen {
					doc.Dates[e.AI()] = t.Format(dateLayout)
				}
			}
		}
	}

	if gtin, ok := r.GTIN(); ok {
		valid := r.GTINCheckDigitValid()
		doc.GTIN, doc.GTINValid = gtin, &valid
	}
	if lot, ok := r.Lot(); ok {
		doc.Lot = &lot
	}
	if serial, ok := r.Serial(); ok {
		doc.Serial = &serial
	}
	if n, ok := r.Count(); ok {
		doc.Count = &n
	}
	if p, ok := r.Price(); ok {
		doc.Price = p.String()
	}
	if cfg.CompanyPrefixLength > 0 {
		if s, err := r.SGTIN(cfg.CompanyPrefixLength); err == nil {
			fits := s.CanSGTIN96() == nil
			doc.SGTIN, doc.SGTIN96 = s.URI(), &fits
		}
	}

	for _, c := range measureCategories {
		q, ok := r.Quantity(c)
		if !ok {
			continue
		}
		if u, ok := cfg.Units.For(c); ok {
			if converted, err := q.In(u); err == nil {
				q = converted
			}
		}
		if doc.Measures == nil {
			doc.Measures = map[string]string{}
		}
		doc.Measures[c.String()] = q.String()
	}
	return doc
}

// writeDocuments writes JSON as one document per line, and YAML as a stream of
// documents.
func writeDocuments(w io.Writer, format string, docs []document) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, doc := range docs {
			if err := enc.Encode(doc); err != nil {
				return errors.Wrap(err, "failed to write JSON")
			}
		}
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, doc := range docs {
			if err := enc.Encode(doc); err != nil {
				return errors.Wrap(err, "failed to write YAML")
			}
		}
		return errors.Wrap(enc.Close(), "failed to write YAML")
	}
	return errors.Errorf("unknown output format %q", format)
}

// writeTable prints the supported AIs, one per row.
func writeTable(w io.Writer, templates []ai.Template) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AI\tTITLE\tKIND\tLENGTH\tDECIMALS\tCATEGORY")
	for _, t := range templates {
		length := fmt.Sprintf("%d", t.MaxValueLength())
		if !t.IsFixed() {
			length = fmt.Sprintf("%d..%d", t.MinValueLength(), t.MaxValueLength())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			t.AI, t.Title, t.Kind, length, t.Decimals, t.Category)
	}
	return errors.Wrap(tw.Flush(), "failed to write table")
}

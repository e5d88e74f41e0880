/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func decodeJSONLines(t *testing.T, out string) []document {
	t.Helper()
	var docs []document
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var doc document
		require.NoError(t, json.Unmarshal(sc.Bytes(), &doc), sc.Text())
		docs = append(docs, doc)
	}
	require.NoError(t, sc.Err())
	return docs
}

func TestDecodeCmd(t *testing.T) {
	out := run(t, "", "decode", "]C10102658960000004\x1D3103004646\x1D10\x1D", "abc")
	docs := decodeJSONLines(t, out)
	require.Len(t, docs, 2)

	doc := docs[0]
	assert.Equal(t, "GS1-128", doc.Symbology)
	require.Len(t, doc.Elements, 3)
	assert.Equal(t, "01", doc.Elements[0].AI)
	assert.Equal(t, []string{"02658960000004"}, doc.Elements[0].Values)
	assert.Equal(t, "3103", doc.Elements[1].AI)
	assert.Equal(t, "4.646", doc.Elements[1].Decimal)
	assert.Equal(t, []string{""}, doc.Elements[2].Values)
	assert.Empty(t, doc.Skipped)

	assert.Equal(t, "02658960000004", doc.GTIN)
	require.NotNil(t, doc.GTINValid)
	assert.True(t, *doc.GTINValid)
	require.NotNil(t, doc.Lot)
	assert.Equal(t, "", *doc.Lot)
	assert.Nil(t, doc.Serial)
	assert.Equal(t, map[string]string{"weight": "4.646 kg"}, doc.Measures)

	assert.Equal(t, "none", docs[1].Symbology)
	assert.Empty(t, docs[1].Elements)
	assert.Equal(t, []string{"abc"}, docs[1].Skipped)
}

func TestDecodeCmd_derived(t *testing.T) {
	docs := decodeJSONLines(t, run(t, "", "decode",
		"0100888446671424"+"17250200"+"3712"+"\x1D"+"39329781345"+"\x1D"+"21ABC"))
	require.Len(t, docs, 1)

	doc := docs[0]
	require.NotNil(t, doc.Count)
	assert.Equal(t, int64(12), *doc.Count)
	assert.Equal(t, "13.45 978", doc.Price)
	assert.Equal(t, map[string]string{"17": "2025-02-28"}, doc.Dates)
	require.NotNil(t, doc.Serial)
	assert.Equal(t, "ABC", *doc.Serial)
	assert.Empty(t, doc.Measures)
}

func TestDecodeCmd_config(t *testing.T) {
	path := writeConfig(t, `
prefixes = ["SCAN:"]
separator_aliases = ["<GS>"]
format = "yaml"

[units]
weight = "g"
liquid_volume = "ml"
`)

	out := run(t, "", "decode", "--config", path,
		"SCAN:0102658960000004<GS>3103004646<GS>3153000750")

	var doc document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "custom", doc.Symbology)
	assert.Empty(t, doc.Skipped)
	assert.Len(t, doc.Elements, 3)
	assert.Equal(t, map[string]string{
		"weight":       "4646 g",
		"liquidVolume": "750 ml",
	}, doc.Measures)

	// flags override the file
	out = run(t, "", "decode", "--config", path, "--format", "json", "3100000001")
	docs := decodeJSONLines(t, out)
	require.Len(t, docs, 1)
	assert.Equal(t, map[string]string{"weight": "1000 g"}, docs[0].Measures)
}

func TestDecodeCmd_sgtin(t *testing.T) {
	path := writeConfig(t, "company_prefix_length = 7\n")
	docs := decodeJSONLines(t, run(t, "", "decode", "--config", path,
		"0100888446671424"+"21193853396487",
		"0100888446671424"+"210193853",
		"0100888446671424"))
	require.Len(t, docs, 3)

	assert.Equal(t, "urn:epc:id:sgtin:0888446.067142.193853396487", docs[0].SGTIN)
	require.NotNil(t, docs[0].SGTIN96)
	assert.True(t, *docs[0].SGTIN96)

	assert.Equal(t, "urn:epc:id:sgtin:0888446.067142.0193853", docs[1].SGTIN)
	require.NotNil(t, docs[1].SGTIN96)
	assert.False(t, *docs[1].SGTIN96)

	// no serial, no SGTIN
	assert.Empty(t, docs[2].SGTIN)
	assert.Nil(t, docs[2].SGTIN96)

	// without a company prefix length there's nothing to split the GTIN on
	docs = decodeJSONLines(t, run(t, "", "decode", "0100888446671424"+"21193853396487"))
	require.Len(t, docs, 1)
	assert.Empty(t, docs[0].SGTIN)
	assert.Nil(t, docs[0].SGTIN96)
}

func TestDecodeCmd_errors(t *testing.T) {
	for name, args := range map[string][]string{
		"no payload":     {"decode"},
		"bad format":     {"decode", "--format", "xml", "3712"},
		"missing config": {"decode", "--config", filepath.Join(t.TempDir(), "none.toml"), "3712"},
	} {
		t.Run(name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(args)
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			assert.Error(t, cmd.Execute())
		})
	}
}

func TestBatchCmd_ordered(t *testing.T) {
	defer goleak.VerifyNone(t)

	var in strings.Builder
	var want []string
	for i := 1; i <= 200; i++ {
		line := fmt.Sprintf("37%d", i)
		want = append(want, line)
		in.WriteString(line + "\n")
		if i%50 == 0 {
			in.WriteString("\n   \n")
		}
	}

	docs := decodeJSONLines(t, run(t, in.String(), "batch", "--workers", "4"))
	require.Len(t, docs, len(want))
	for i, doc := range docs {
		assert.Equal(t, want[i], doc.Input)
		require.NotNil(t, doc.Count, doc.Input)
		assert.Equal(t, int64(i+1), *doc.Count)
	}
}

func TestBatchCmd_file(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "scans.txt")
	require.NoError(t, os.WriteFile(path, []byte("392012\nasdf\n3100000001\n"), 0600))

	out := run(t, "", "batch", "--format", "yaml", path)
	dec := yaml.NewDecoder(strings.NewReader(out))
	var docs []document
	for {
		var doc document
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		docs = append(docs, doc)
	}

	require.Len(t, docs, 3)
	assert.Equal(t, "12", docs[0].Price)
	assert.Equal(t, []string{"asdf"}, docs[1].Skipped)
	assert.Equal(t, map[string]string{"weight": "1 kg"}, docs[2].Measures)
}

func TestBatchCmd_missingFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"batch", filepath.Join(t.TempDir(), "none.txt")})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.Error(t, cmd.Execute())
}

func TestTableCmd(t *testing.T) {
	out := run(t, "", "table")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 56)
	assert.True(t, strings.HasPrefix(lines[0], "AI"))
	assert.Contains(t, out, "4321")
	assert.Contains(t, out, "weight")
	assert.Contains(t, out, "0..20")
}

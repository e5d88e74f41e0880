/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package gs1ai decodes GS1 element strings, the concatenated AI encoded
// fields carried by GS1-128, GS1 DataBar and GS1 2D barcodes, into typed
// elements, and offers unit-aware accessors for the usual retail fields.
//
// Decoding never fails. Text that can't be attributed to a known AI is kept as
// skipped spans next to the elements that could be decoded, so partially
// damaged or truncated scans still yield whatever they contain.
//
// Fixed length AIs are self-delimiting, but variable length AIs are only
// terminated by an ASCII GS (FNC1) if something follows them, and scanners
// don't always send it. Without one, the decoder picks the longest value that
// lets the rest of the payload decode cleanly, where "cleanly" means that the
// remainder is a sequence of known AIs ending at a separator or at the end of
// the input. If no such boundary exists, the longest valid value wins, and
// whatever follows is decoded or skipped as usual.
package gs1ai

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai/ai"
	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai/epc"
)

// Decoder decodes GS1 element strings. The zero value is not usable; create
// one with NewDecoder. A Decoder is immutable and safe for concurrent use.
type Decoder struct {
	prefixes []symbologyPrefix
	aliases  *strings.Replacer
	logger   *zap.Logger
	// zero means the current time when a date is read
	refTime time.Time
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithPrefixes adds literal payload prefixes to strip before decoding, in
// addition to the GS1 symbology identifiers. They're tried first, in order.
func WithPrefixes(prefixes ...string) Option {
	return func(d *Decoder) {
		custom := make([]symbologyPrefix, 0, len(prefixes))
		for _, p := range prefixes {
			if p != "" {
				custom = append(custom, symbologyPrefix{p, CustomPrefix})
			}
		}
		d.prefixes = append(custom, d.prefixes...)
	}
}

// WithSeparatorAliases makes the decoder treat each alias as a GS separator.
// This is useful for payloads typed by hand or passed through systems that
// can't carry control characters, e.g. "<GS>" or "\F".
func WithSeparatorAliases(aliases ...string) Option {
	return func(d *Decoder) {
		var pairs []string
		for _, a := range aliases {
			if a != "" {
				pairs = append(pairs, a, string(epc.GroupSeparator))
			}
		}
		if len(pairs) > 0 {
			d.aliases = strings.NewReplacer(pairs...)
		}
	}
}

// WithLogger sets a logger for debug traces of prefixes, failed AI attempts
// and skipped spans. By default the decoder doesn't log.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithReferenceTime fixes the time that 2 digit years in decoded dates are
// resolved against. By default dates are resolved against the current time
// when they're read, so a Result holds only what was decoded from its input.
func WithReferenceTime(ref time.Time) Option {
	return func(d *Decoder) {
		d.refTime = ref
	}
}

// NewDecoder returns a Decoder configured with the given options.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		prefixes: symbologyPrefixes,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode decodes raw with a default Decoder.
func Decode(raw string) Result {
	return defaultDecoder.Decode(raw)
}

// Decode decodes a scanned payload into elements and skipped spans.
//
// Leading and trailing white space, as appended by many keyboard wedge
// scanners, is ignored, as is a leading symbology identifier. A blank or
// separator-only payload gives an empty Result.
func (d *Decoder) Decode(raw string) Result {
	r := Result{refTime: d.refTime}

	payload := strings.TrimSpace(raw)
	payload, r.symbology = stripPrefix(payload, d.prefixes)
	if r.symbology != NoSymbology {
		d.logger.Debug("stripped symbology prefix",
			zap.Stringer("symbology", r.symbology))
	}
	if d.aliases != nil {
		payload = d.aliases.Replace(payload)
	}

	sc := newScanner(payload, d.logger)
	r.elements, r.skipped = sc.scan()
	return r
}

// match is the memoized outcome of trying to decode an element at a position.
type match struct {
	tried bool
	ok    bool
	el    Element
	// end of the value; a separator after it hasn't been consumed
	end int
}

// scanner walks a single payload. Matches and clean boundaries are memoized
// per position, so the backtracking search for variable length values visits
// each position at most once.
type scanner struct {
	in      string
	matches []match
	// 0 = unknown, 1 = clean, -1 = not clean
	clean  []int8
	logger *zap.Logger
}

func newScanner(in string, logger *zap.Logger) *scanner {
	return &scanner{
		in:      in,
		matches: make([]match, len(in)),
		clean:   make([]int8, len(in)),
		logger:  logger,
	}
}

func (sc *scanner) isSeparator(pos int) bool {
	return pos < len(sc.in) && sc.in[pos] == epc.GroupSeparator
}

// scan decodes the whole input left to right.
//
// Characters that don't start an element accumulate into a skipped span,
// which is flushed at every separator, before every element, and before
// every failed attempt at an AI. A failed attempt consumes the AI and as many
// following characters as its value could have used, up to the first element
// that decodes cleanly, and that text becomes a skipped span of its own.
func (sc *scanner) scan() (elements []Element, skipped []string) {
	skipStart := -1
	flush := func(pos int) {
		if skipStart >= 0 && skipStart < pos {
			span := sc.in[skipStart:pos]
			if ce := sc.logger.Check(zap.DebugLevel, "skipped span"); ce != nil {
				ce.Write(zap.String("span", span), zap.Int("offset", skipStart))
			}
			skipped = append(skipped, span)
		}
		skipStart = -1
	}

	pos := 0
	for pos < len(sc.in) {
		if sc.isSeparator(pos) {
			flush(pos)
			pos++
			continue
		}

		t, ok := ai.Lookup(sc.in[pos:])
		if !ok {
			if skipStart < 0 {
				skipStart = pos
			}
			pos++
			continue
		}

		flush(pos)
		if el, end, ok := sc.tryMatchAt(pos); ok {
			elements = append(elements, el)
			pos = end
			if sc.isSeparator(pos) {
				pos++
			}
			continue
		}

		end := sc.attemptEnd(t, pos)
		if ce := sc.logger.Check(zap.DebugLevel, "invalid value for AI"); ce != nil {
			ce.Write(zap.String("ai", t.AI), zap.String("span", sc.in[pos:end]),
				zap.Int("offset", pos))
		}
		skipped = append(skipped, sc.in[pos:end])
		pos = end
	}
	flush(pos)
	return elements, skipped
}

// tryMatchAt decodes the element starting at pos, if there is one, returning
// it along with the position just after its value.
func (sc *scanner) tryMatchAt(pos int) (Element, int, bool) {
	m := &sc.matches[pos]
	if m.tried {
		return m.el, m.end, m.ok
	}
	m.tried, m.end = true, pos

	t, ok := ai.Lookup(sc.in[pos:])
	if !ok {
		return Element{}, pos, false
	}

	start := pos + len(t.AI)
	var end int
	if t.IsFixed() {
		end = start + t.Length
		if end > len(sc.in) || sc.validRun(t, start, end) != end {
			return Element{}, pos, false
		}
	} else if end, ok = sc.variableEnd(t, start); !ok {
		return Element{}, pos, false
	}

	m.ok, m.el, m.end = true, newElement(t, sc.in[start:end]), end
	return m.el, m.end, true
}

// validRun returns the end of the run of characters in [start, limit) that
// are valid for t's value.
func (sc *scanner) validRun(t ai.Template, start, limit int) int {
	if limit > len(sc.in) {
		limit = len(sc.in)
	}
	i := start
	for i < limit && t.ValidChar(sc.in[i]) {
		i++
	}
	return i
}

// variableEnd finds where a variable length value starting at start ends:
// the furthest valid end from which the rest of the input decodes cleanly,
// or, if there is none, the furthest valid end.
func (sc *scanner) variableEnd(t ai.Template, start int) (int, bool) {
	longest := sc.validRun(t, start, start+t.MaxValueLength())
	shortest := start + t.MinValueLength()
	if longest < shortest {
		return 0, false
	}
	for end := longest; end >= shortest; end-- {
		if sc.isClean(end) {
			return end, true
		}
	}
	return longest, true
}

// isClean returns true if pos is at the end of the input, at a separator, or
// at an element whose own end is clean.
func (sc *scanner) isClean(pos int) bool {
	if pos >= len(sc.in) || sc.isSeparator(pos) {
		return true
	}
	if sc.clean[pos] != 0 {
		return sc.clean[pos] > 0
	}

	_, end, ok := sc.tryMatchAt(pos)
	clean := ok && sc.isClean(end)
	if clean {
		sc.clean[pos] = 1
	} else {
		sc.clean[pos] = -1
	}
	return clean
}

// attemptEnd returns the end of a failed attempt to decode t at pos: the AI
// itself plus the characters its value could have consumed, cut short where
// an element starts from which the rest of the input decodes cleanly.
func (sc *scanner) attemptEnd(t ai.Template, pos int) int {
	start := pos + len(t.AI)
	end := sc.validRun(t, start, start+t.MaxValueLength())
	for p := start; p < end; p++ {
		if _, next, ok := sc.tryMatchAt(p); ok && sc.isClean(next) {
			return p
		}
	}
	return end
}

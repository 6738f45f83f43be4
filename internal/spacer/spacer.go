// Package spacer implements the width-padding transform for status-bar
// protocol lines: the placeholder marker in a line is replaced with enough
// separator characters that the quoted text spans plus the padding reach a
// target width.
package spacer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	runewidth "github.com/mattn/go-runewidth"
)

// Defaults match the sway/i3status-rs convention: dummy blocks whose
// full_text is the marker get replaced with separator runs.
const (
	DefaultMarker    = "<<>>"
	DefaultLabel     = `"full_text"`
	DefaultSeparator = "|"
)

// Measure selects how quoted spans are counted against the target width.
type Measure string

const (
	// MeasureRunes counts one unit per character.
	MeasureRunes Measure = "runes"
	// MeasureCells counts terminal display cells, so wide glyphs weigh two.
	MeasureCells Measure = "cells"
)

// IsValidMeasure reports whether s names a known measure mode.
func IsValidMeasure(s string) bool {
	switch Measure(s) {
	case MeasureRunes, MeasureCells:
		return true
	}
	return false
}

// ErrMalformedLine reports a marked line that splits into fewer than two
// segments, leaving no gap between blocks to pad.
var ErrMalformedLine = errors.New("marked line has fewer than two segments")

// Options holds the padding parameters. They are fixed for the process
// lifetime; only Width has no default and must be positive.
type Options struct {
	Width     int
	Marker    string
	Label     string
	Separator string
	Measure   Measure
}

// Validate checks the options after defaults have been applied.
// Rules:
// - Width must be positive
// - Marker and Label must be non-empty
// - Separator must be exactly one character
// - Measure must name a known mode
func (o Options) Validate() error {
	if o.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", o.Width)
	}
	if o.Marker == "" {
		return fmt.Errorf("marker must be non-empty")
	}
	if o.Label == "" {
		return fmt.Errorf("label must be non-empty")
	}
	if utf8.RuneCountInString(o.Separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", o.Separator)
	}
	if !IsValidMeasure(string(o.Measure)) {
		return fmt.Errorf("measure must be %q or %q, got %q", MeasureRunes, MeasureCells, o.Measure)
	}
	return nil
}

// Spacer applies the padding transform one line at a time. It carries no
// state across lines; a single instance is safe to reuse for the whole
// stream.
type Spacer struct {
	opts Options
}

// New fills in defaults for unset token literals, validates the options,
// and returns a ready Spacer.
func New(opts Options) (*Spacer, error) {
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}
	if opts.Label == "" {
		opts.Label = DefaultLabel
	}
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}
	if opts.Measure == "" {
		opts.Measure = MeasureRunes
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Spacer{opts: opts}, nil
}

// Options returns a copy of the effective options after defaulting.
func (s *Spacer) Options() Options {
	return s.opts
}

// Process transforms one line. Lines without the marker are returned
// unchanged. For marked lines, every marker occurrence is replaced with
// pad/num separator characters, where pad is the target width minus the
// summed quoted-span widths of the non-marker segments and num is the
// segment count minus one. Floor division drops the remainder, so a padded
// line may render up to num-1 units short of the target. When pad is not
// positive, each marker degrades to a single separator.
//
// A marked line with fewer than two segments after the label split has no
// gap to pad and returns ErrMalformedLine.
func (s *Spacer) Process(line string) (string, error) {
	if !strings.Contains(line, s.opts.Marker) {
		return line, nil
	}

	// Everything before the first label occurrence is protocol framing,
	// not a block, and never counts toward the width.
	pieces := strings.Split(line, s.opts.Label)
	segments := pieces[1:]
	num := len(segments) - 1
	if num < 1 {
		return "", fmt.Errorf("%w: %d segment(s) after splitting on %q", ErrMalformedLine, len(segments), s.opts.Label)
	}

	total := 0
	for _, seg := range segments {
		if strings.Contains(seg, s.opts.Marker) {
			continue
		}
		total += s.quotedSpanWidth(seg)
	}

	pad := s.opts.Width - total
	if pad <= 0 {
		return strings.ReplaceAll(line, s.opts.Marker, s.opts.Separator), nil
	}

	// per may floor to zero when pad < num; the markers then collapse to
	// nothing, keeping the rendered width at or under the target.
	per := pad / num
	if s.opts.Measure == MeasureCells {
		if sw := runewidth.StringWidth(s.opts.Separator); sw > 1 {
			per /= sw
		}
	}
	return strings.ReplaceAll(line, s.opts.Marker, strings.Repeat(s.opts.Separator, per)), nil
}

// quotedSpanWidth measures the characters strictly between the first and
// second double quote of the segment. Text outside that first quoted pair
// is block metadata and is ignored.
func (s *Spacer) quotedSpanWidth(segment string) int {
	inside := false
	width := 0
	for _, r := range segment {
		if r == '"' {
			if inside {
				break
			}
			inside = true
			continue
		}
		if inside {
			if s.opts.Measure == MeasureCells {
				width += runewidth.RuneWidth(r)
			} else {
				width++
			}
		}
	}
	return width
}

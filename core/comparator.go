// Copyright 2025 The go-cryptodiff Authors
// This file is part of the go-cryptodiff library.
//
// The go-cryptodiff library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-cryptodiff library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-cryptodiff library. If not, see <http://www.gnu.org/licenses/>.

package core

import (
	"fmt"
	"strings"

	"github.com/kylelemons/godebug/pretty"

	"github.com/cryptodiff/go-cryptodiff/operation"
	"github.com/cryptodiff/go-cryptodiff/types"
)

// Divergence is the fatal finding: two or more concrete results for the same
// operation and modifier disagree. Self names the module when the mismatch is
// between two strategies of a single library, and is empty for cross-module
// mismatches.
type Divergence struct {
	Op      *operation.Operation
	Results []Result
	Self    string
}

func (d *Divergence) Error() string {
	var b strings.Builder
	if d.Self != "" {
		fmt.Fprintf(&b, "self-divergence in module %q on %s", d.Self, d.Op)
	} else {
		fmt.Fprintf(&b, "divergence on %s", d.Op)
	}
	for _, r := range d.Results {
		if r.Declined() {
			continue
		}
		fmt.Fprintf(&b, "\n  %-12s %s", r.Module, r.Value.Canonical())
	}
	return b.String()
}

// Diff renders a structural diff between the first two disagreeing canonical
// results, for human consumption in crash reports.
func (d *Divergence) Diff() string {
	var first string
	seen := false
	for _, r := range d.Results {
		if r.Declined() {
			continue
		}
		c := canonical(d.Op.Kind, r.Value)
		if !seen {
			first, seen = c, true
			continue
		}
		if c != first {
			return pretty.Compare(first, c)
		}
	}
	return ""
}

// canonical maps a result to the string used for equality. Cmp-style results
// collapse to their sign class: libraries are free to return any negative
// code for "less than", so -7 and -1 are the same answer.
func canonical(kind operation.Kind, v types.Value) string {
	s := v.Canonical()
	if kind == operation.Cmp {
		switch {
		case strings.HasPrefix(s, "-"):
			return "-1"
		case s == "0":
			return "0"
		default:
			return "1"
		}
	}
	return s
}

func equalCanonical(kind operation.Kind, a, b types.Value) bool {
	return canonical(kind, a) == canonical(kind, b)
}

// Compare checks that all concrete results denote the same value. Declines
// are filtered first; with fewer than two concrete results there is nothing
// to compare and the operation trivially passes. The first concrete result in
// registry order is the reference everything else is held against.
func Compare(op *operation.Operation, results []Result) *Divergence {
	var (
		ref      string
		concrete int
	)
	for _, r := range results {
		if r.Declined() {
			continue
		}
		concrete++
		c := canonical(op.Kind, r.Value)
		if concrete == 1 {
			ref = c
			continue
		}
		if c != ref {
			return &Divergence{Op: op, Results: results}
		}
	}
	return nil
}

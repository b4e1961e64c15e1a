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
	"github.com/fxamacker/cbor/v2"
)

// Report is the serializable form of a divergence, persisted by the outer
// harness so a finding can be reproduced and triaged without re-running the
// crashing input.
type Report struct {
	Kind      string         `cbor:"kind"`
	Algorithm string         `cbor:"algorithm"`
	Operands  []string       `cbor:"operands"`
	Modifier  []byte         `cbor:"modifier"`
	Self      string         `cbor:"self,omitempty"`
	Results   []ReportResult `cbor:"results"`
}

// ReportResult is one module's canonical answer, or its decline.
type ReportResult struct {
	Module   string `cbor:"module"`
	Result   string `cbor:"result,omitempty"`
	Declined bool   `cbor:"declined,omitempty"`
}

var encMode, _ = cbor.CanonicalEncOptions().EncMode()

// Report converts the divergence into its serializable form.
func (d *Divergence) Report() *Report {
	rep := &Report{
		Kind:      d.Op.Kind.String(),
		Algorithm: d.Op.Algorithm.String(),
		Modifier:  d.Op.Modifier,
		Self:      d.Self,
	}
	for _, v := range d.Op.Operands {
		rep.Operands = append(rep.Operands, v.Canonical())
	}
	for _, r := range d.Results {
		rr := ReportResult{Module: r.Module, Declined: r.Declined()}
		if !r.Declined() {
			rr.Result = r.Value.Canonical()
		}
		rep.Results = append(rep.Results, rr)
	}
	return rep
}

// Encode serializes the report with canonical CBOR, so byte-identical
// findings deduplicate on content.
func (r *Report) Encode() ([]byte, error) {
	return encMode.Marshal(r)
}

// DecodeReport parses a report previously produced by Encode.
func DecodeReport(data []byte) (*Report, error) {
	var r Report
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

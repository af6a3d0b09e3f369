// Copyright 2025 The ember Authors
// This file is part of the ember library.
//
// The ember library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ember library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ember library. If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"testing"

	"github.com/emberlabs/ember/common"
)

func TestBloom(t *testing.T) {
	positive := []string{
		"testtest",
		"test",
		"hallo",
		"other",
	}
	negative := []string{
		"tes",
		"lo",
	}

	var bloom Bloom
	for _, data := range positive {
		bloom.Add([]byte(data))
	}

	for _, data := range positive {
		if !bloom.Test([]byte(data)) {
			t.Error("expected", data, "to test true")
		}
	}
	for _, data := range negative {
		if bloom.Test([]byte(data)) {
			t.Error("did not expect", data, "to test true")
		}
	}
}

func TestCreateBloom(t *testing.T) {
	receipt := &Receipt{
		Logs: []*Log{
			{Address: common.HexToAddress("0x05"), Topics: []common.Hash{common.HexToHash("0x1234")}},
		},
	}
	bloom := CreateBloom(Receipts{receipt})
	if !BloomLookup(bloom, common.HexToAddress("0x05")) {
		t.Error("expected address in bloom")
	}
	if !BloomLookup(bloom, common.HexToHash("0x1234")) {
		t.Error("expected topic in bloom")
	}
	if BloomLookup(bloom, common.HexToAddress("0x99")) {
		t.Error("did not expect address in bloom")
	}
	// A receipt without logs yields the empty bloom.
	if b := CreateBloom(Receipts{{}}); b != (Bloom{}) {
		t.Error("empty receipt must give empty bloom")
	}
}

//
// Copyright 2025 The SignedDocs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package digests

import (
	"testing"
)

func TestDigest_Accessors(t *testing.T) {
	d := NewDigest("sha256", []byte{0xba, 0x78, 0x16, 0xbf})

	if got := d.Algorithm(); got != "sha256" {
		t.Errorf("Algorithm() = %q, want %q", got, "sha256")
	}
	if got := d.Hex(); got != "ba7816bf" {
		t.Errorf("Hex() = %q, want %q", got, "ba7816bf")
	}
	if got := d.Size(); got != 4 {
		t.Errorf("Size() = %d, want 4", got)
	}
	if got := d.String(); got != "sha256:ba7816bf" {
		t.Errorf("String() = %q, want %q", got, "sha256:ba7816bf")
	}
}

func TestDigest_Immutable(t *testing.T) {
	raw := []byte{0x01, 0x02}
	d := NewDigest("sha256", raw)

	// Mutating the input or the returned value must not affect the digest.
	raw[0] = 0xff
	d.Value()[0] = 0xee

	if got := d.Hex(); got != "0102" {
		t.Errorf("Hex() after mutation = %q, want %q", got, "0102")
	}
}

func TestDigest_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Digest
		want bool
	}{
		{
			name: "equal",
			a:    NewDigest("sha256", []byte{0x01}),
			b:    NewDigest("sha256", []byte{0x01}),
			want: true,
		},
		{
			name: "different value",
			a:    NewDigest("sha256", []byte{0x01}),
			b:    NewDigest("sha256", []byte{0x02}),
			want: false,
		},
		{
			name: "different algorithm",
			a:    NewDigest("sha256", []byte{0x01}),
			b:    NewDigest("blake2b", []byte{0x01}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

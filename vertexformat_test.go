// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestVertexFormatLayout(t *testing.T) {
	f := NewVertexFormat([]VertexElement{
		{Semantic: SemanticPosition, Format: gputypes.VertexFormatFloat32x3},
		{Semantic: SemanticNormal, Format: gputypes.VertexFormatFloat32x3},
		{Semantic: SemanticTexCoord0, Format: gputypes.VertexFormatFloat32x2},
		{Semantic: SemanticColor, Format: gputypes.VertexFormatUnorm8x4},
	}, false)

	if f.Stride() != 36 {
		t.Errorf("expected stride 36, got %d", f.Stride())
	}
	wantOffsets := []int32{0, 12, 24, 32}
	for i, e := range f.Elements() {
		if e.offset != wantOffsets[i] {
			t.Errorf("element %d: expected offset %d, got %d", i, wantOffsets[i], e.offset)
		}
	}
}

func TestVertexFormatHashDistinguishesLayouts(t *testing.T) {
	base := []VertexElement{
		{Semantic: SemanticPosition, Format: gputypes.VertexFormatFloat32x3},
		{Semantic: SemanticTexCoord0, Format: gputypes.VertexFormatFloat32x2},
	}
	f1 := NewVertexFormat(base, false)

	// Equal layouts share a hash.
	f2 := NewVertexFormat([]VertexElement{
		{Semantic: SemanticPosition, Format: gputypes.VertexFormatFloat32x3},
		{Semantic: SemanticTexCoord0, Format: gputypes.VertexFormatFloat32x2},
	}, false)
	if f1.Hash() != f2.Hash() {
		t.Error("expected equal layouts to share a hash")
	}

	// Order, element format and step mode all change the hash.
	reordered := NewVertexFormat([]VertexElement{
		{Semantic: SemanticTexCoord0, Format: gputypes.VertexFormatFloat32x2},
		{Semantic: SemanticPosition, Format: gputypes.VertexFormatFloat32x3},
	}, false)
	if f1.Hash() == reordered.Hash() {
		t.Error("expected reordered layout to hash differently")
	}
	widened := NewVertexFormat([]VertexElement{
		{Semantic: SemanticPosition, Format: gputypes.VertexFormatFloat32x4},
		{Semantic: SemanticTexCoord0, Format: gputypes.VertexFormatFloat32x2},
	}, false)
	if f1.Hash() == widened.Hash() {
		t.Error("expected widened element to hash differently")
	}
	instanced := NewVertexFormat(base, true)
	if f1.Hash() == instanced.Hash() {
		t.Error("expected instanced layout to hash differently")
	}
}

func TestSemanticLocationsFixed(t *testing.T) {
	cases := []struct {
		semantic string
		want     uint32
	}{
		{SemanticPosition, 0},
		{SemanticNormal, 1},
		{SemanticBlendIndices, 9},
		{SemanticAttr12, 12},
		{SemanticAttr15, 15},
	}
	for _, c := range cases {
		loc, ok := SemanticLocation(c.semantic)
		if !ok || loc != c.want {
			t.Errorf("%s: expected location %d, got %d (ok=%v)", c.semantic, c.want, loc, ok)
		}
	}
	if _, ok := SemanticLocation("BOGUS"); ok {
		t.Error("expected unknown semantic to be rejected")
	}
}

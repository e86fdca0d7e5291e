// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"testing"

	"github.com/gogpu/forge/glapi"
)

// stubProvider is a ContextProvider that always fails context creation.
type stubProvider struct {
	name string
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) CreateContext(attrs ContextAttributes) (glapi.Context, Surface, error) {
	return nil, nil, ErrNoContext
}

func TestRegisterGet(t *testing.T) {
	Register("stub", func() ContextProvider { return &stubProvider{name: "stub"} })
	defer Unregister("stub")

	if !IsRegistered("stub") {
		t.Fatal("expected stub provider to be registered")
	}

	p := Get("stub")
	if p == nil {
		t.Fatal("Get returned nil for registered provider")
	}
	if p.Name() != "stub" {
		t.Errorf("expected name stub, got %q", p.Name())
	}
}

func TestGetUnregistered(t *testing.T) {
	if p := Get("no-such-provider"); p != nil {
		t.Errorf("expected nil for unregistered provider, got %v", p)
	}
}

func TestUnregister(t *testing.T) {
	Register("temp", func() ContextProvider { return &stubProvider{name: "temp"} })
	Unregister("temp")

	if IsRegistered("temp") {
		t.Error("expected temp provider to be unregistered")
	}
}

func TestAvailable(t *testing.T) {
	Register("avail-a", func() ContextProvider { return &stubProvider{name: "avail-a"} })
	Register("avail-b", func() ContextProvider { return &stubProvider{name: "avail-b"} })
	defer Unregister("avail-a")
	defer Unregister("avail-b")

	names := Available()
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["avail-a"] || !found["avail-b"] {
		t.Errorf("expected avail-a and avail-b in %v", names)
	}
}

func TestDefaultFallsBackToAnyRegistered(t *testing.T) {
	Register("fallback", func() ContextProvider { return &stubProvider{name: "fallback"} })
	defer Unregister("fallback")

	p := Default()
	if p == nil {
		t.Fatal("expected Default to return the only registered provider")
	}
}

func TestDefaultContextAttributes(t *testing.T) {
	attrs := DefaultContextAttributes()
	if !attrs.Depth {
		t.Error("expected depth to default to enabled")
	}
	if !attrs.Antialias {
		t.Error("expected antialias to default to enabled")
	}
	if attrs.Stencil {
		t.Error("expected stencil to default to disabled")
	}
	if attrs.Width != 800 || attrs.Height != 600 {
		t.Errorf("expected 800x600 default size, got %dx%d", attrs.Width, attrs.Height)
	}
}

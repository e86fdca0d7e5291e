// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"sync"
)

// Provider names known to the registry.
const (
	// ProviderGL is the go-gl/glfw provider in backend/gl.
	ProviderGL = "gl"
)

// ProviderFactory creates a new provider instance.
type ProviderFactory func() ContextProvider

// registry holds registered providers.
var (
	registryMu sync.RWMutex
	providers  = make(map[string]ProviderFactory)

	// Priority order for provider selection (first available wins).
	providerPriority = []string{ProviderGL}
)

// Register registers a provider factory with the given name.
// This is typically called from init() functions in provider packages.
// If a provider with the same name is already registered, it is replaced.
func Register(name string, factory ProviderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	providers[name] = factory
}

// Unregister removes a provider from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(providers, name)
}

// Available returns a list of registered provider names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a provider with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := providers[name]
	return ok
}

// Get returns a provider instance by name.
// Returns nil if the provider is not registered.
func Get(name string) ContextProvider {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := providers[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available provider based on priority.
// Returns nil if no providers are registered.
func Default() ContextProvider {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range providerPriority {
		if factory, ok := providers[name]; ok {
			if p := factory(); p != nil {
				return p
			}
		}
	}

	// Fallback: return first available
	for _, factory := range providers {
		if p := factory(); p != nil {
			return p
		}
	}

	return nil
}

// MustDefault returns the default provider or panics.
func MustDefault() ContextProvider {
	p := Default()
	if p == nil {
		panic("backend: no context provider available")
	}
	return p
}

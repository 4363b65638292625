// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hashengines

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Factory)
	mu       sync.RWMutex
)

// Register makes factory available under name.
//
// Names are case-sensitive. Registering an empty name, a nil factory, or a
// name that is already taken returns an error.
func Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("engine name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[name]; exists {
		return fmt.Errorf("hash engine %q already registered", name)
	}
	registry[name] = factory
	return nil
}

// MustRegister registers factory or panics. Engine packages call it from init.
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register hash engine %q: %v", name, err))
	}
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	mu.RLock()
	factory, exists := registry[name]
	mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported hash engine: %s (supported: %v)", name, Supported())
	}
	return factory, nil
}

// Create returns a fresh engine registered under name.
func Create(name string) (Engine, error) {
	factory, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return factory(), nil
}

// Supported returns the sorted list of registered engine names.
func Supported() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether an engine is registered under name.
func IsSupported(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, exists := registry[name]
	return exists
}

// Unregister removes name from the registry. It is meant for tests.
func Unregister(name string) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[name]; !exists {
		return fmt.Errorf("hash engine %q not registered", name)
	}
	delete(registry, name)
	return nil
}

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

package engines_test

import (
	"sort"
	"sync"
	"testing"

	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
	"github.com/streamhash/streamhash/pkg/hashing/engines/memory"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name    string
		engine  string
		wantErr bool
	}{
		{"default", memory.SHA256Name, false},
		{"alternate", memory.SIMDName, false},
		{"other family", "blake2b", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := hashengines.Create(tt.engine)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if engine.DigestName() != tt.engine {
				t.Errorf("DigestName() = %q, want %q", engine.DigestName(), tt.engine)
			}
		})
	}
}

func TestCreate_ReturnsFreshEngines(t *testing.T) {
	a, err := hashengines.Create(memory.SHA256Name)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	b, err := hashengines.Create(memory.SHA256Name)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	a.Update([]byte("only in a"))
	if got, want := b.Finish().Hex(), memory.SumSHA256(nil).Hex(); got != want {
		t.Errorf("second engine saw first engine's update: %q, want %q", got, want)
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		engine  string
		factory hashengines.Factory
		wantErr bool
	}{
		{"valid registration", "test-engine", memory.NewSHA256, false},
		{"empty name", "", memory.NewSHA256, true},
		{"nil factory", "test-nil", nil, true},
		{"duplicate of builtin", memory.SHA256Name, memory.NewSHA256, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hashengines.Register(tt.engine, tt.factory)
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				_ = hashengines.Unregister(tt.engine)
			}
		})
	}
}

func TestMustRegister_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustRegister() should panic on duplicate registration")
		}
	}()

	hashengines.MustRegister(memory.SIMDName, memory.NewSIMD)
}

func TestSupported(t *testing.T) {
	names := hashengines.Supported()

	if !sort.StringsAreSorted(names) {
		t.Errorf("Supported() = %v, not sorted", names)
	}
	for _, want := range []string{memory.SHA256Name, memory.SIMDName} {
		if !hashengines.IsSupported(want) {
			t.Errorf("IsSupported(%q) = false", want)
		}
	}
	if hashengines.IsSupported("md5") {
		t.Error("IsSupported(md5) = true")
	}
}

func TestUnregister(t *testing.T) {
	if err := hashengines.Register("unregister-test", memory.NewSIMD); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := hashengines.Unregister("unregister-test"); err != nil {
		t.Errorf("Unregister() error = %v", err)
	}
	if hashengines.IsSupported("unregister-test") {
		t.Error("engine still registered after Unregister()")
	}
	if err := hashengines.Unregister("unregister-test"); err == nil {
		t.Error("Unregister() of missing engine should fail")
	}
}

func TestConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = hashengines.Supported()
			_ = hashengines.IsSupported(memory.SHA256Name)
			_, _ = hashengines.Create(memory.SHA256Name)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = hashengines.Register("concurrent-test", memory.NewSHA256)
			_ = hashengines.Unregister("concurrent-test")
		}
	}()

	wg.Wait()
}

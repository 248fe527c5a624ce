/*
Copyright 2025 The Declconf Authors.
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/declconf/declconf-runtime/pkg/value"
)

func asAny[V any](g *rapid.Generator[V]) *rapid.Generator[any] {
	return rapid.Map(g, func(v V) any { return v })
}

func scalars() *rapid.Generator[any] {
	return rapid.OneOf(
		rapid.Just[any](nil),
		asAny(rapid.Bool()),
		asAny(rapid.StringMatching(`[a-z]{0,6}`)),
		asAny(rapid.IntRange(-99, 99)),
		asAny(rapid.Float64Range(-99, 99)),
	)
}

// trees generates arbitrary configuration trees up to the supplied depth.
func trees(depth int) *rapid.Generator[any] {
	if depth <= 0 {
		return scalars()
	}
	child := trees(depth - 1)
	return rapid.OneOf(
		scalars(),
		asAny(rapid.MapOfN(rapid.StringMatching(`[a-z]{1,4}`), child, 0, 4)),
		asAny(rapid.SliceOfN(child, 0, 4)),
	)
}

func TestConfigurationIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := trees(4).Draw(t, "x")

		got, err := Configuration(x, x)
		if err != nil {
			t.Fatalf("Configuration(x, x): unexpected error: %v", err)
		}
		if !got.Changes.Empty() {
			t.Fatalf("Configuration(x, x): recorded changes: %v", got.Changes)
		}
		if diff := cmp.Diff(x, got.Merged); diff != "" {
			t.Fatalf("Configuration(x, x) merged: -want, +got:\n%s", diff)
		}
	})
}

func TestConfigurationIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		desired := trees(4).Draw(t, "desired")
		observed := trees(4).Draw(t, "observed")

		first, err := Configuration(desired, observed)
		if err != nil {
			t.Fatalf("Configuration(desired, observed): unexpected error: %v", err)
		}
		second, err := Configuration(desired, first.Merged)
		if err != nil {
			t.Fatalf("Configuration(desired, merged): unexpected error: %v", err)
		}
		if !second.Changes.Empty() {
			t.Fatalf("Configuration(desired, merged): recorded changes: %v", second.Changes)
		}
		if diff := cmp.Diff(first.Merged, second.Merged); diff != "" {
			t.Fatalf("Configuration(desired, merged) merged: -want, +got:\n%s", diff)
		}
	})
}

func TestConfigurationDoesNotMutateInputs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		desired := trees(4).Draw(t, "desired")
		observed := trees(4).Draw(t, "observed")

		wantDesired := value.DeepCopy(desired)
		wantObserved := value.DeepCopy(observed)

		if _, err := Configuration(desired, observed); err != nil {
			t.Fatalf("Configuration(desired, observed): unexpected error: %v", err)
		}
		if diff := cmp.Diff(wantDesired, desired); diff != "" {
			t.Fatalf("Configuration(...) mutated its desired input: -want, +got:\n%s", diff)
		}
		if diff := cmp.Diff(wantObserved, observed); diff != "" {
			t.Fatalf("Configuration(...) mutated its observed input: -want, +got:\n%s", diff)
		}
	})
}

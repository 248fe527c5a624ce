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

// Package value models configuration values: the arbitrarily nested trees of
// mappings, sequences, and scalars that declarative configurations are made
// of. Trees are plain Go values of the kind encoding/json produces - mappings
// are map[string]any, sequences are []any, and scalars are strings, booleans,
// numbers, or nil.
package value

import (
	"fmt"
	"reflect"

	"github.com/declconf/declconf-runtime/pkg/errors"
	"github.com/declconf/declconf-runtime/pkg/fieldpath"
)

// A Kind classifies a node of a configuration tree.
type Kind int

// Kinds of configuration value.
const (
	KindInvalid Kind = iota
	KindNull
	KindMapping
	KindSequence
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	default:
		return "invalid"
	}
}

// KindOf returns the Kind of the supplied value. Values that cannot appear in
// a configuration tree are KindInvalid.
func KindOf(v any) Kind {
	if v == nil {
		return KindNull
	}
	switch v.(type) {
	case map[string]any:
		return KindMapping
	case []any:
		return KindSequence
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return KindScalar
	}
	return KindInvalid
}

// Validate walks the supplied tree and returns an error if it contains a
// value that is not a configuration value. A *errors.TypeError is returned
// for unsupported types, including mappings whose keys are not strings, and a
// *errors.CycleError for containers that are reachable from themselves.
// Validate accepts any tree encoding/json or sigs.k8s.io/yaml produces.
func Validate(v any) error {
	return validate(v, "", make(map[uintptr]struct{}))
}

func validate(v any, path string, visiting map[uintptr]struct{}) error {
	switch tv := v.(type) {
	case map[string]any:
		p := reflect.ValueOf(tv).Pointer()
		if _, ok := visiting[p]; ok {
			return &errors.CycleError{Path: path}
		}
		visiting[p] = struct{}{}
		for k, cv := range tv {
			if err := validate(cv, fieldpath.Child(path, k), visiting); err != nil {
				return err
			}
		}
		delete(visiting, p)
		return nil
	case []any:
		p := reflect.ValueOf(tv).Pointer()
		if _, ok := visiting[p]; ok {
			return &errors.CycleError{Path: path}
		}
		visiting[p] = struct{}{}
		for i, cv := range tv {
			if err := validate(cv, fieldpath.Index(path, i), visiting); err != nil {
				return err
			}
		}
		delete(visiting, p)
		return nil
	}

	if KindOf(v) != KindInvalid {
		return nil
	}
	if reflect.ValueOf(v).Kind() == reflect.Map {
		return &errors.TypeError{Path: path, Reason: "mapping keys must be strings"}
	}
	return &errors.TypeError{Path: path, Reason: fmt.Sprintf("unsupported type %T", v)}
}

// Equal reports whether two configuration values are equal. Containers are
// compared structurally. Scalar equality is canonical: all integer and float
// kinds compare by mathematical value, so int(3) equals float64(3.0), while
// booleans only ever equal booleans and strings compare by content.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bcv, ok := bv[k]
			if !ok || !Equal(v, bcv) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i, v := range av {
			if !Equal(v, bv[i]) {
				return false
			}
		}
		return true
	}

	if an, ok := number(a); ok {
		bn, ok := number(b)
		return ok && an == bn
	}

	// Strings, booleans, nil, and mismatched kinds. The container kinds are
	// handled above, so this comparison cannot panic.
	return a == b
}

// number returns the supplied value as a float64, if it is numeric.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// DeepCopy returns a copy of the supplied tree that shares no containers with
// the original.
func DeepCopy(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, cv := range tv {
			out[k] = DeepCopy(cv)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, cv := range tv {
			out[i] = DeepCopy(cv)
		}
		return out
	}
	return v
}

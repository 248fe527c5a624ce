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

// Package reconcile computes the difference between a desired configuration
// and an observed one. It overlays the desired tree onto the observed tree,
// preserving observed mapping entries the desired tree does not mention, and
// records every value it changes in a flat change log keyed by field path.
//
// Callers typically fetch the observed configuration from the system they
// manage, reconcile it against their declarative desired configuration, and
// push the merged result back if the change log is not empty.
package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/declconf/declconf-runtime/pkg/errors"
	"github.com/declconf/declconf-runtime/pkg/fieldpath"
	"github.com/declconf/declconf-runtime/pkg/logging"
	"github.com/declconf/declconf-runtime/pkg/value"
)

// DefaultMaxDepth is the deepest nesting of caller supplied configuration
// trees reconciliation will traverse unless configured otherwise.
const DefaultMaxDepth = 1024

// Error strings.
const (
	errDesired  = "cannot use desired configuration"
	errObserved = "cannot use observed configuration"
)

// A Change records the transition of one position in a configuration tree
// from its observed value to its desired value. Positions that were absent
// on either side are nil.
type Change struct {
	New any `json:"new"`
	Old any `json:"old"`
}

// Changes is a change log: a flat record of every position at which
// reconciliation changed the observed configuration, keyed by field path.
type Changes map[string]Change

// Empty reports whether reconciliation changed anything. An empty change log
// means the observed configuration already matches the desired one and no
// update is needed.
func (c Changes) Empty() bool { return len(c) == 0 }

// Paths returns the changed paths in lexical order.
func (c Changes) Paths() []string {
	paths := make([]string, 0, len(c))
	for p := range c {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// String renders the change log with one "path: old -> new" line per change,
// in lexical path order.
func (c Changes) String() string {
	b := &strings.Builder{}
	for _, p := range c.Paths() {
		fmt.Fprintf(b, "%s: %v -> %v\n", p, c[p].Old, c[p].New)
	}
	return b.String()
}

// A Reconciliation is the result of overlaying a desired configuration onto
// an observed one.
type Reconciliation struct {
	// Merged is the desired configuration overlaid onto the observed one. It
	// has the desired tree's shape wherever the desired tree specifies one,
	// and preserves observed mapping entries the desired tree omits. Callers
	// push it to the system they manage as the complete end state.
	Merged any

	// Changes records every position at which Merged differs from the
	// observed configuration.
	Changes Changes
}

// An Option configures how configurations are reconciled.
type Option func(*reconciler)

// WithNamespace prefixes every change log path with the supplied namespace,
// as if both trees were nested under it. Callers that manage several
// resources use this to keep one change log per resource name.
func WithNamespace(ns string) Option {
	return func(r *reconciler) {
		r.namespace = ns
	}
}

// WithMaxDepth bounds how deeply reconciliation will recurse into the
// supplied trees. Reconciling a tree nested more deeply than the supplied
// limit returns a *errors.DepthError rather than risking the stack.
func WithMaxDepth(depth int) Option {
	return func(r *reconciler) {
		r.maxDepth = depth
	}
}

// WithLogger specifies how reconciliation should log recorded changes.
func WithLogger(log logging.Logger) Option {
	return func(r *reconciler) {
		r.log = log
	}
}

// WithMetrics specifies how reconciliation outcomes should be recorded.
func WithMetrics(m Metrics) Option {
	return func(r *reconciler) {
		r.metrics = m
	}
}

type reconciler struct {
	namespace string
	maxDepth  int
	log       logging.Logger
	metrics   Metrics
}

// Configuration overlays the supplied desired configuration onto the
// supplied observed one and records everything it changed.
//
// Wherever both trees have a mapping, each desired key is merged into the
// observed mapping and observed keys the desired tree omits are preserved
// untouched. Wherever both trees have a sequence, elements are merged
// positionally: the merged sequence has the desired length, appended
// elements are recorded as new, and truncated observed elements are recorded
// as removed. Wherever the two trees disagree about a node's kind the
// desired value wins wholesale, recording a single change for the whole
// subtree - unless the desired value is an empty container, which still wins
// but is not worth logging. Scalars compare by value; see value.Equal.
//
// Neither input is mutated. The merged tree may share untouched subtrees
// with both inputs.
func Configuration(desired, observed any, o ...Option) (Reconciliation, error) {
	r := &reconciler{
		maxDepth: DefaultMaxDepth,
		log:      logging.NewNopLogger(),
		metrics:  NopMetrics{},
	}
	for _, fn := range o {
		fn(r)
	}

	if err := value.Validate(desired); err != nil {
		return Reconciliation{}, errors.Wrap(err, errDesired)
	}
	if err := value.Validate(observed); err != nil {
		return Reconciliation{}, errors.Wrap(err, errObserved)
	}

	changes := Changes{}
	merged, err := r.merge(desired, observed, changes, r.namespace, 0)
	if err != nil {
		return Reconciliation{}, err
	}

	r.metrics.Reconciled(len(changes))
	return Reconciliation{Merged: merged, Changes: changes}, nil
}

func (r *reconciler) merge(desired, observed any, changes Changes, path string, depth int) (any, error) {
	if depth > r.maxDepth {
		return nil, &errors.DepthError{Path: path, Limit: r.maxDepth}
	}

	switch d := desired.(type) {
	case map[string]any:
		o, ok := observed.(map[string]any)
		if !ok {
			// The desired tree wins wholesale, but replacing something with
			// an empty mapping is not worth logging.
			if len(d) > 0 {
				r.record(changes, path, desired, observed)
			}
			return desired, nil
		}
		merged := make(map[string]any, len(o)+len(d))
		for k, v := range o {
			merged[k] = v
		}
		for _, k := range sortedKeys(d) {
			mv, err := r.merge(d[k], o[k], changes, fieldpath.Child(path, k), depth+1)
			if err != nil {
				return nil, err
			}
			merged[k] = mv
		}
		return merged, nil

	case []any:
		o, ok := observed.([]any)
		if !ok {
			if len(d) > 0 {
				r.record(changes, path, desired, observed)
			}
			return desired, nil
		}
		merged := make([]any, len(d))
		for i, dv := range d {
			var ov any
			if i < len(o) {
				ov = o[i]
			}
			mv, err := r.merge(dv, ov, changes, fieldpath.Index(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			merged[i] = mv
		}
		// Observed elements beyond the desired length are removed.
		for i := len(d); i < len(o); i++ {
			r.record(changes, fieldpath.Index(path, i), nil, o[i])
		}
		return merged, nil
	}

	if !value.Equal(desired, observed) {
		r.record(changes, path, desired, observed)
	}
	return desired, nil
}

func (r *reconciler) record(changes Changes, path string, desired, observed any) {
	changes[path] = Change{New: desired, Old: observed}
	r.log.Debug("Recorded configuration change", "path", path, "old", observed, "new", desired)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

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

// Package fieldpath builds and resolves the paths that address positions in
// a configuration tree, e.g. "spec.containers[0].name". Mapping keys are
// joined with ".", and sequence indices are rendered as "[i]" with no
// separating dot. The root of a tree is the empty path.
package fieldpath

import (
	"strconv"
	"strings"

	"github.com/declconf/declconf-runtime/pkg/errors"
)

// Error strings.
const (
	errUnterminatedIndex = "unterminated sequence index"
	errEmptyField        = "empty field name"

	errFmtInvalidIndex = "invalid sequence index %q"
	errFmtNotMapping   = "%s: not a mapping"
	errFmtNotSequence  = "%s: not a sequence"
	errFmtNoSuchField  = "%s: no such field"
	errFmtOutOfRange   = "%s: index out of range"
)

// Child returns the path of the supplied mapping key below prefix. A key at
// the root of a tree is the bare key name.
func Child(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Index returns the path of the i'th element of the sequence at prefix.
func Index(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

// A SegmentType is a type of path segment.
type SegmentType int

// Segment types.
const (
	// SegmentField is a mapping key.
	SegmentField SegmentType = iota

	// SegmentIndex is a sequence index.
	SegmentIndex
)

// A Segment of a path addresses one level of a configuration tree.
type Segment struct {
	Type  SegmentType
	Field string
	Index int
}

// FieldSegment returns a Segment that addresses the supplied mapping key.
func FieldSegment(f string) Segment {
	return Segment{Type: SegmentField, Field: f}
}

// IndexSegment returns a Segment that addresses the supplied sequence index.
func IndexSegment(i int) Segment {
	return Segment{Type: SegmentIndex, Index: i}
}

func (s Segment) String() string {
	if s.Type == SegmentIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Field
}

// Parse the supplied path into its segments. The empty path parses to no
// segments; it addresses the root of a tree.
func Parse(path string) ([]Segment, error) {
	var segments []Segment
	for i := 0; i < len(path); {
		switch path[i] {
		case '[':
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, errors.New(errUnterminatedIndex)
			}
			idx, err := strconv.Atoi(path[i+1 : i+end])
			if err != nil || idx < 0 {
				return nil, errors.Errorf(errFmtInvalidIndex, path[i+1:i+end])
			}
			segments = append(segments, IndexSegment(idx))
			i += end + 1
		case '.':
			if len(segments) == 0 {
				return nil, errors.New(errEmptyField)
			}
			i++
			if i == len(path) || path[i] == '.' || path[i] == '[' {
				return nil, errors.New(errEmptyField)
			}
		default:
			end := strings.IndexAny(path[i:], ".[")
			if end < 0 {
				end = len(path) - i
			}
			segments = append(segments, FieldSegment(path[i:i+end]))
			i += end
		}
	}
	return segments, nil
}

// Join returns the path addressed by the supplied segments.
func Join(segments []Segment) string {
	path := ""
	for _, s := range segments {
		if s.Type == SegmentIndex {
			path = Index(path, s.Index)
			continue
		}
		path = Child(path, s.Field)
	}
	return path
}

// Fetch returns the value at the supplied path within the supplied tree.
func Fetch(tree any, path string) (any, error) {
	segments, err := Parse(path)
	if err != nil {
		return nil, err
	}

	v := tree
	for i, s := range segments {
		at := Join(segments[:i+1])
		switch s.Type {
		case SegmentField:
			m, ok := v.(map[string]any)
			if !ok {
				return nil, errors.Errorf(errFmtNotMapping, at)
			}
			cv, ok := m[s.Field]
			if !ok {
				return nil, errors.Errorf(errFmtNoSuchField, at)
			}
			v = cv
		case SegmentIndex:
			sq, ok := v.([]any)
			if !ok {
				return nil, errors.Errorf(errFmtNotSequence, at)
			}
			if s.Index >= len(sq) {
				return nil, errors.Errorf(errFmtOutOfRange, at)
			}
			v = sq[s.Index]
		}
	}
	return v, nil
}

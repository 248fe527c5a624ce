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

package value

import (
	"encoding/json"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/known/structpb"
	"sigs.k8s.io/yaml"
)

// Error strings.
const (
	errParseJSON = "cannot parse JSON configuration"
	errParseYAML = "cannot parse YAML configuration"
	errNewStruct = "cannot convert configuration to struct"
	errNewValue  = "cannot convert configuration to value"
)

// FromJSON returns the configuration tree encoded in the supplied JSON
// document.
func FromJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, errParseJSON)
	}
	return v, nil
}

// FromYAML returns the configuration tree encoded in the supplied YAML
// document. The tree uses JSON shapes - mappings are map[string]any and
// numbers are float64.
func FromYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, errParseYAML)
	}
	return v, nil
}

// FromStruct returns the configuration tree represented by the supplied
// protobuf struct. Observed state often arrives in this shape from gRPC
// providers.
func FromStruct(s *structpb.Struct) map[string]any {
	return s.AsMap()
}

// AsStruct returns the supplied mapping as a protobuf struct, suitable for
// sending to a gRPC provider.
func AsStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	return s, errors.Wrap(err, errNewStruct)
}

// FromProtoValue returns the configuration tree represented by the supplied
// protobuf value.
func FromProtoValue(v *structpb.Value) any {
	return v.AsInterface()
}

// AsProtoValue returns the supplied configuration tree as a protobuf value.
func AsProtoValue(v any) (*structpb.Value, error) {
	pv, err := structpb.NewValue(v)
	return pv, errors.Wrap(err, errNewValue)
}

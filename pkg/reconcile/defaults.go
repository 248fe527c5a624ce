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
	"dario.cat/mergo"

	"github.com/declconf/declconf-runtime/pkg/errors"
	"github.com/declconf/declconf-runtime/pkg/value"
)

const errMergeDefaults = "cannot merge defaults into desired configuration"

// Defaulted returns the supplied desired configuration with any entries it
// leaves unset filled in from the supplied defaults. Desired entries always
// win; zero values are treated as unset, per mergo's merge semantics. Use
// this to complete a sparse declarative configuration before reconciling it
// against observed state. Neither input is mutated.
func Defaulted(desired, defaults map[string]any) (map[string]any, error) {
	out, _ := value.DeepCopy(desired).(map[string]any)
	if out == nil {
		out = map[string]any{}
	}
	d, _ := value.DeepCopy(defaults).(map[string]any)
	if err := mergo.Merge(&out, d); err != nil {
		return nil, errors.Wrap(err, errMergeDefaults)
	}
	return out, nil
}

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
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/declconf/declconf-runtime/pkg/errors"
)

// Error strings.
const (
	errMarshalObserved = "cannot marshal observed configuration"
	errMarshalMerged   = "cannot marshal merged configuration"
	errCreatePatch     = "cannot create merge patch"
)

// MergePatch returns an RFC 7386 JSON merge patch that transforms the
// observed configuration into the merged one. Callers that talk to systems
// accepting partial updates can push this patch instead of the whole merged
// tree.
func MergePatch(observed, merged any) ([]byte, error) {
	o, err := json.Marshal(observed)
	if err != nil {
		return nil, errors.Wrap(err, errMarshalObserved)
	}
	m, err := json.Marshal(merged)
	if err != nil {
		return nil, errors.Wrap(err, errMarshalMerged)
	}
	patch, err := jsonpatch.CreateMergePatch(o, m)
	return patch, errors.Wrap(err, errCreatePatch)
}

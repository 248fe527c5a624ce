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
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const errReadFile = "cannot read configuration file"

// Load reads the configuration tree in the file at the supplied path. Files
// with a .json extension are parsed as JSON; everything else is parsed as
// YAML, of which JSON is a subset.
func Load(fs afero.Fs, path string) (any, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap(err, errReadFile)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FromJSON(data)
	}
	return FromYAML(data)
}

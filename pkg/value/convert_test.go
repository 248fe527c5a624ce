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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestFromJSON(t *testing.T) {
	cases := map[string]struct {
		reason  string
		data    string
		want    any
		wantErr bool
	}{
		"Document": {
			reason: "JSON documents decode to configuration trees.",
			data:   `{"cmd": "sleep 5", "cpus": 0.1, "ports": [80, 443]}`,
			want: map[string]any{
				"cmd":   "sleep 5",
				"cpus":  0.1,
				"ports": []any{float64(80), float64(443)},
			},
		},
		"Scalar": {
			data: `"cool"`,
			want: "cool",
		},
		"Malformed": {
			data:    `{"cmd": `,
			wantErr: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := FromJSON([]byte(tc.data))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("\n%s\nFromJSON(...): want error, got nil", tc.reason)
				}
				return
			}
			if err != nil {
				t.Fatalf("\n%s\nFromJSON(...): unexpected error: %v", tc.reason, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("\n%s\nFromJSON(...): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestFromYAML(t *testing.T) {
	data := `
cmd: sleep 5
instances: 3
labels:
  env: prod
`
	want := map[string]any{
		"cmd":       "sleep 5",
		"instances": float64(3),
		"labels":    map[string]any{"env": "prod"},
	}

	got, err := FromYAML([]byte(data))
	if err != nil {
		t.Fatalf("FromYAML(...): unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromYAML(...): -want, +got:\n%s", diff)
	}
}

func TestStructRoundTrip(t *testing.T) {
	in := map[string]any{
		"cmd":   "sleep 5",
		"cpus":  0.1,
		"ports": []any{float64(80)},
	}

	s, err := AsStruct(in)
	if err != nil {
		t.Fatalf("AsStruct(...): unexpected error: %v", err)
	}
	if diff := cmp.Diff(in, FromStruct(s)); diff != "" {
		t.Errorf("FromStruct(AsStruct(...)): -want, +got:\n%s", diff)
	}
}

func TestAsStructUnsupported(t *testing.T) {
	if _, err := AsStruct(map[string]any{"ch": make(chan int)}); err == nil {
		t.Errorf("AsStruct(...): want error, got nil")
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/etc/app/desired.json", []byte(`{"cmd": "sleep 5"}`), 0o644)
	_ = afero.WriteFile(fs, "/etc/app/observed.yaml", []byte("cmd: sleep 1\nmem: 10\n"), 0o644)

	cases := map[string]struct {
		reason  string
		path    string
		want    any
		wantErr bool
	}{
		"JSON": {
			reason: "Files with a .json extension parse as JSON.",
			path:   "/etc/app/desired.json",
			want:   map[string]any{"cmd": "sleep 5"},
		},
		"YAML": {
			reason: "Other files parse as YAML.",
			path:   "/etc/app/observed.yaml",
			want:   map[string]any{"cmd": "sleep 1", "mem": float64(10)},
		},
		"Missing": {
			reason:  "Missing files are an error.",
			path:    "/etc/app/nonexist.json",
			wantErr: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Load(fs, tc.path)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("\n%s\nLoad(...): want error, got nil", tc.reason)
				}
				return
			}
			if err != nil {
				t.Fatalf("\n%s\nLoad(...): unexpected error: %v", tc.reason, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("\n%s\nLoad(...): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

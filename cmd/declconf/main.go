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

// declconf reconciles a desired configuration file against an observed one
// and prints the change log, the merged configuration, or a merge patch.
package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr/funcr"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"github.com/declconf/declconf-runtime/pkg/logging"
	"github.com/declconf/declconf-runtime/pkg/reconcile"
	"github.com/declconf/declconf-runtime/pkg/value"
)

func main() {
	var (
		desiredPath  string
		observedPath string
		output       string
		namespace    string
		maxDepth     int
		debug        bool
	)

	pflag.StringVar(&desiredPath, "desired", "", "Path to the desired configuration (JSON or YAML)")
	pflag.StringVar(&observedPath, "observed", "", "Path to the observed configuration (JSON or YAML)")
	pflag.StringVar(&output, "output", "changes", "What to print: changes, merged, or patch")
	pflag.StringVar(&namespace, "namespace", "", "Prefix for change log paths")
	pflag.IntVar(&maxDepth, "max-depth", reconcile.DefaultMaxDepth, "Maximum configuration nesting depth")
	pflag.BoolVar(&debug, "debug", false, "Log every recorded change to stderr")
	pflag.Parse()

	if desiredPath == "" || observedPath == "" {
		die(nil, "both --desired and --observed must be specified")
	}

	log := logging.NewNopLogger()
	if debug {
		log = logging.NewLogrLogger(funcr.New(func(prefix, args string) {
			fmt.Fprintln(os.Stderr, prefix, args)
		}, funcr.Options{Verbosity: 1}))
	}

	fs := afero.NewOsFs()
	desired, err := value.Load(fs, desiredPath)
	if err != nil {
		die(err, "unable to load desired configuration")
	}
	observed, err := value.Load(fs, observedPath)
	if err != nil {
		die(err, "unable to load observed configuration")
	}

	rec, err := reconcile.Configuration(desired, observed,
		reconcile.WithNamespace(namespace),
		reconcile.WithMaxDepth(maxDepth),
		reconcile.WithLogger(log),
	)
	if err != nil {
		die(err, "unable to reconcile configurations")
	}

	switch output {
	case "changes":
		render(rec.Changes)
	case "merged":
		render(rec.Merged)
	case "patch":
		patch, err := reconcile.MergePatch(observed, rec.Merged)
		if err != nil {
			die(err, "unable to create merge patch")
		}
		fmt.Println(string(patch))
	default:
		die(nil, fmt.Sprintf("unknown output %q: want changes, merged, or patch", output))
	}
}

func render(v any) {
	out, err := yaml.Marshal(v)
	if err != nil {
		die(err, "unable to marshal output")
	}
	fmt.Print(string(out))
}

func die(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", msg, err)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(1)
}

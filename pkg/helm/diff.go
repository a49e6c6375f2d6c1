package helm

import (
	"fmt"
	"slices"
	"sort"

	"helm.sh/helm/v3/pkg/releaseutil"
	"sigs.k8s.io/yaml"
)

// canonicalDocuments parses a multi-document manifest and re-serializes
// every document with sorted keys, dropping comments, document order and
// trailing whitespace. Helm rewrites source headers and reorders documents
// by kind when it stores a release manifest, so the stored string never
// matches the renderer's output byte for byte even when the resources are
// identical.
func canonicalDocuments(manifest string) ([]string, error) {
	var docs []string

	for _, doc := range releaseutil.SplitManifests(manifest) {
		obj := map[string]interface{}{}
		if err := yaml.Unmarshal([]byte(doc), &obj); err != nil {
			return nil, fmt.Errorf("failed to parse manifest document: %w", err)
		}

		// Comment-only documents parse to nothing.
		if len(obj) == 0 {
			continue
		}

		out, err := yaml.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize manifest document: %w", err)
		}
		docs = append(docs, string(out))
	}

	sort.Strings(docs)
	return docs, nil
}

// manifestsDiffer reports whether two multi-document manifests describe
// different resource sets.
func manifestsDiffer(a, b string) (bool, error) {
	docsA, err := canonicalDocuments(a)
	if err != nil {
		return false, err
	}

	docsB, err := canonicalDocuments(b)
	if err != nil {
		return false, err
	}

	return !slices.Equal(docsA, docsB), nil
}

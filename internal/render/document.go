package render

import (
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"
)

// Document is one rendered Kubernetes API document.
type Document struct {
	// Kind is the resource kind, for logging and source comments.
	Kind string

	// Name is the resolved resource name.
	Name string

	// Object is the typed (or, for legacy API shapes, unstructured) resource.
	Object interface{}
}

// Marshal serializes the document to canonical YAML. Map keys come out
// sorted, so serializing the same object always yields identical bytes.
func (d Document) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(d.Object)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s/%s: %w", d.Kind, d.Name, err)
	}
	return out, nil
}

// Manifest joins documents into a single multi-document YAML stream with
// source comments, in the order given.
func Manifest(docs []Document) (string, error) {
	var b strings.Builder

	for _, doc := range docs {
		out, err := doc.Marshal()
		if err != nil {
			return "", err
		}

		b.WriteString("---\n")
		fmt.Fprintf(&b, "# Source: %s/%s\n", doc.Kind, doc.Name)
		b.Write(out)
	}

	return b.String(), nil
}

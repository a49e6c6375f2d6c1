package helm

import (
	"fmt"

	"helm.sh/helm/v3/pkg/chart"
	"sigs.k8s.io/yaml"
)

// ChartMeta identifies the in-memory chart a release is packaged as.
type ChartMeta struct {
	Name       string
	Version    string
	AppVersion string
}

// BuildChart packages pre-rendered manifest documents as a Helm chart so the
// release lifecycle (history, upgrade, rollback, uninstall) is tracked by
// Helm's release storage. The templates contain no template actions, so
// Helm's engine passes them through unchanged.
func BuildChart(meta ChartMeta, templates map[string]string) *chart.Chart {
	ch := &chart.Chart{
		Metadata: &chart.Metadata{
			APIVersion: chart.APIVersionV2,
			Name:       meta.Name,
			Version:    meta.Version,
			AppVersion: meta.AppVersion,
			Type:       "application",
		},
	}

	for path, content := range templates {
		ch.Templates = append(ch.Templates, &chart.File{
			Name: path,
			Data: []byte(content),
		})
	}

	return ch
}

// ValuesMap converts a typed values struct into the generic map Helm records
// on the release.
func ValuesMap(values interface{}) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal values: %w", err)
	}

	out := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to convert values: %w", err)
	}
	return out, nil
}

package helm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChart(t *testing.T) {
	templates := map[string]string{
		"templates/deployment.yaml": "kind: Deployment\n",
		"templates/service.yaml":    "kind: Service\n",
	}

	ch := BuildChart(ChartMeta{
		Name:       "mern-microservices",
		Version:    "0.1.0",
		AppVersion: "1.0.0",
	}, templates)

	require.NotNil(t, ch.Metadata)
	assert.Equal(t, "mern-microservices", ch.Metadata.Name)
	assert.Equal(t, "0.1.0", ch.Metadata.Version)
	assert.Equal(t, "1.0.0", ch.Metadata.AppVersion)
	assert.Equal(t, "application", ch.Metadata.Type)

	require.Len(t, ch.Templates, 2)

	seen := map[string]string{}
	for _, tpl := range ch.Templates {
		seen[tpl.Name] = string(tpl.Data)
	}
	assert.Equal(t, templates, seen)
}

func TestBuildChartEmptyTemplates(t *testing.T) {
	ch := BuildChart(ChartMeta{Name: "mern-microservices", Version: "0.1.0"}, nil)

	require.NotNil(t, ch.Metadata)
	assert.Empty(t, ch.Templates)
}

func TestValuesMap(t *testing.T) {
	type image struct {
		Repository string `json:"repository"`
		Tag        string `json:"tag"`
	}
	type values struct {
		ReplicaCount int32 `json:"replicaCount"`
		Image        image `json:"image"`
	}

	out, err := ValuesMap(values{
		ReplicaCount: 2,
		Image:        image{Repository: "mernstack/hello-service", Tag: "1.0.0"},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(2), out["replicaCount"])

	img, ok := out["image"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "mernstack/hello-service", img["repository"])
	assert.Equal(t, "1.0.0", img["tag"])
}

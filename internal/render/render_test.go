package render

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/config"
)

func testContext() chart.ReleaseContext {
	return chart.NewReleaseContext("mern-app", "default")
}

func resolve(t *testing.T, loaded *config.Values) *config.Values {
	t.Helper()
	v, err := config.Resolve(loaded)
	require.NoError(t, err)
	return v
}

func kinds(docs []Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Kind+"/"+d.Name)
	}
	return out
}

func TestRenderDefaultStack(t *testing.T) {
	r := New(testContext(), resolve(t, &config.Values{}))

	docs, err := r.Render()
	require.NoError(t, err)

	// Three enabled services, no secret (no connection string), no service
	// account, no ingress.
	assert.Equal(t, []string{
		"Deployment/mern-app-mern-microservices-hello-service",
		"Service/mern-app-mern-microservices-hello-service",
		"Deployment/mern-app-mern-microservices-profile-service",
		"Service/mern-app-mern-microservices-profile-service",
		"Deployment/mern-app-mern-microservices-frontend",
		"Service/mern-app-mern-microservices-frontend",
	}, kinds(docs))
}

// Rendering the same configuration twice must yield byte-identical output.
func TestRenderIdempotent(t *testing.T) {
	values := resolve(t, &config.Values{
		Mongodb: config.Mongodb{ConnectionString: "mongodb://mongo:27017/app"},
		HelloService: config.Service{
			Env: map[string]string{"B": "2", "A": "1", "C": "3"},
		},
		CommonLabels:      map[string]string{"team": "platform", "env": "dev"},
		CommonAnnotations: map[string]string{"checked": "yes"},
		Ingress:           config.Ingress{Enabled: ptr.To(true)},
	})

	first, err := New(testContext(), values).Manifest()
	require.NoError(t, err)
	second, err := New(testContext(), values).Manifest()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderDisabledServiceSkipped(t *testing.T) {
	values := resolve(t, &config.Values{
		HelloService: config.Service{Enabled: ptr.To(false)},
	})

	docs, err := New(testContext(), values).Render()
	require.NoError(t, err)

	got := kinds(docs)
	assert.NotContains(t, got, "Deployment/mern-app-mern-microservices-hello-service")
	assert.NotContains(t, got, "Service/mern-app-mern-microservices-hello-service")
	assert.Contains(t, got, "Deployment/mern-app-mern-microservices-profile-service")
	assert.Contains(t, got, "Deployment/mern-app-mern-microservices-frontend")
}

func TestRenderSecretGating(t *testing.T) {
	tests := []struct {
		name       string
		mongodb    config.Mongodb
		wantSecret bool
	}{
		{
			name:       "connection string with chart-managed secret",
			mongodb:    config.Mongodb{ConnectionString: "mongodb://x", CreateSecret: ptr.To(true)},
			wantSecret: true,
		},
		{
			name:       "createSecret false",
			mongodb:    config.Mongodb{ConnectionString: "mongodb://x", CreateSecret: ptr.To(false)},
			wantSecret: false,
		},
		{
			name:       "no connection string",
			mongodb:    config.Mongodb{CreateSecret: ptr.To(true)},
			wantSecret: false,
		},
		{
			name: "existing secret referenced by name only",
			mongodb: config.Mongodb{
				ConnectionString: "mongodb://x",
				CreateSecret:     ptr.To(true),
				ExistingSecret:   "external-mongo",
			},
			wantSecret: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := resolve(t, &config.Values{Mongodb: tt.mongodb})

			docs, err := New(testContext(), values).Render()
			require.NoError(t, err)

			var secrets []Document
			for _, d := range docs {
				if d.Kind == "Secret" {
					secrets = append(secrets, d)
				}
			}

			if !tt.wantSecret {
				assert.Empty(t, secrets)
				return
			}

			require.Len(t, secrets, 1)
			secret, ok := secrets[0].Object.(*corev1.Secret)
			require.True(t, ok)
			assert.Equal(t, []byte("mongodb://x"), secret.Data["connection-string"])
		})
	}
}

// The serialized secret must carry the base64 encoding of the connection
// string under the connection-string key.
func TestSecretSerialization(t *testing.T) {
	values := resolve(t, &config.Values{
		Mongodb: config.Mongodb{ConnectionString: "mongodb://x", CreateSecret: ptr.To(true)},
	})

	secret := Secret(testContext(), values)
	require.NotNil(t, secret)

	out, err := yaml.Marshal(secret)
	require.NoError(t, err)

	encoded := base64.StdEncoding.EncodeToString([]byte("mongodb://x"))
	assert.Contains(t, string(out), "connection-string: "+encoded)
}

func TestRenderServiceAccount(t *testing.T) {
	values := resolve(t, &config.Values{
		ServiceAccount: config.ServiceAccount{Create: ptr.To(true)},
	})

	docs, err := New(testContext(), values).Render()
	require.NoError(t, err)

	require.Equal(t, "ServiceAccount", docs[0].Kind)
	assert.Equal(t, "mern-app-mern-microservices", docs[0].Name)
}

func TestManifestSourceComments(t *testing.T) {
	manifest, err := New(testContext(), resolve(t, &config.Values{})).Manifest()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(manifest, "---\n# Source: Deployment/"))
	assert.Contains(t, manifest, "# Source: Service/mern-app-mern-microservices-frontend")
}

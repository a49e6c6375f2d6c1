package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestResolveEmptyInputKeepsDefaults(t *testing.T) {
	resolved, err := Resolve(&Values{})
	require.NoError(t, err)

	assert.Equal(t, Defaults(), resolved)
}

func TestResolveOverridesOnlySpecifiedLeaves(t *testing.T) {
	resolved, err := Resolve(&Values{
		HelloService: Service{
			ReplicaCount: 5,
			Resources: Resources{
				Requests: ResourceList{CPU: "200m"},
			},
		},
	})
	require.NoError(t, err)

	// Overridden leaves.
	assert.Equal(t, int32(5), resolved.HelloService.ReplicaCount)
	assert.Equal(t, "200m", resolved.HelloService.Resources.Requests.CPU)

	// Sibling leaves keep their defaults (key-wise recursive merge).
	assert.Equal(t, "128Mi", resolved.HelloService.Resources.Requests.Memory)
	assert.Equal(t, "250m", resolved.HelloService.Resources.Limits.CPU)
	assert.Equal(t, "hello-service", resolved.HelloService.Name)

	// Unrelated services untouched.
	assert.Equal(t, Defaults().ProfileService, resolved.ProfileService)
}

func TestResolveDisableService(t *testing.T) {
	resolved, err := Resolve(&Values{
		HelloService: Service{Enabled: ptr.To(false)},
	})
	require.NoError(t, err)

	assert.False(t, resolved.HelloService.IsEnabled())
	assert.True(t, resolved.ProfileService.IsEnabled())
	assert.True(t, resolved.Frontend.IsEnabled())
}

func TestPullPolicyFallback(t *testing.T) {
	tests := []struct {
		name          string
		servicePolicy string
		globalPolicy  string
		want          string
	}{
		{name: "service value wins", servicePolicy: "Never", globalPolicy: "Always", want: "Never"},
		{name: "empty leaf falls back to global", servicePolicy: "", globalPolicy: "Always", want: "Always"},
		{name: "both empty uses built-in default", servicePolicy: "", globalPolicy: "", want: "IfNotPresent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Values{Global: Global{PullPolicy: tt.globalPolicy}}
			svc := &Service{Image: Image{PullPolicy: tt.servicePolicy}}
			assert.Equal(t, tt.want, v.PullPolicy(svc))
		})
	}
}

func TestImageRef(t *testing.T) {
	tests := []struct {
		name string
		v    Values
		svc  Service
		want string
	}{
		{
			name: "global registry",
			v:    Values{Global: Global{Registry: "docker.io"}},
			svc:  Service{Image: Image{Repository: "mernstack/frontend", Tag: "1.2.3"}},
			want: "docker.io/mernstack/frontend:1.2.3",
		},
		{
			name: "service registry wins",
			v:    Values{Global: Global{Registry: "docker.io"}},
			svc:  Service{Image: Image{Registry: "ghcr.io", Repository: "mernstack/frontend", Tag: "1.2.3"}},
			want: "ghcr.io/mernstack/frontend:1.2.3",
		},
		{
			name: "no registry",
			svc:  Service{Image: Image{Repository: "frontend", Tag: "dev"}},
			want: "frontend:dev",
		},
		{
			name: "empty tag defaults to latest",
			svc:  Service{Image: Image{Repository: "frontend"}},
			want: "frontend:latest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.ImageRef(&tt.svc))
		})
	}
}

func TestEnvVarsSorted(t *testing.T) {
	v := &Values{}
	svc := &Service{Env: map[string]string{
		"ZULU":  "z",
		"ALPHA": "a",
		"MIKE":  "m",
	}}

	vars := v.EnvVars(svc)
	require.Len(t, vars, 3)
	assert.Equal(t, "ALPHA", vars[0].Name)
	assert.Equal(t, "MIKE", vars[1].Name)
	assert.Equal(t, "ZULU", vars[2].Name)
}

func TestSchedulingFallbacks(t *testing.T) {
	v := &Values{
		NodeSelector: map[string]string{"pool": "general"},
	}

	svc := &Service{}
	assert.Equal(t, map[string]string{"pool": "general"}, v.NodeSelectorFor(svc))

	svc.NodeSelector = map[string]string{"pool": "frontend"}
	assert.Equal(t, map[string]string{"pool": "frontend"}, v.NodeSelectorFor(svc))
}

func TestDatabaseEnabled(t *testing.T) {
	v := &Values{Mongodb: Mongodb{ConnectionString: "mongodb://x"}}

	assert.True(t, v.DatabaseEnabled(&Service{Database: Database{Enabled: ptr.To(true)}}))
	assert.False(t, v.DatabaseEnabled(&Service{Database: Database{Enabled: ptr.To(false)}}))
	assert.False(t, v.DatabaseEnabled(&Service{}))

	// Opting in without any connection source configured yields nothing.
	empty := &Values{}
	assert.False(t, empty.DatabaseEnabled(&Service{Database: Database{Enabled: ptr.To(true)}}))

	// An externally managed secret is a valid source.
	external := &Values{Mongodb: Mongodb{ExistingSecret: "mongo-creds"}}
	assert.True(t, external.DatabaseEnabled(&Service{Database: Database{Enabled: ptr.To(true)}}))
}

func TestServiceByComponent(t *testing.T) {
	v := Defaults()

	svc, err := v.ServiceByComponent("profile-service")
	require.NoError(t, err)
	assert.Equal(t, "profile-service", svc.Name)

	_, err = v.ServiceByComponent("unknown")
	assert.Error(t, err)
}

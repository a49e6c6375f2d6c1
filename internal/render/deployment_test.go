package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/utils/ptr"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/config"
)

func helloRef(v *config.Values) config.ServiceRef {
	return config.ServiceRef{Component: config.ComponentHelloService, Service: &v.HelloService}
}

func TestDeploymentBasics(t *testing.T) {
	ctx := testContext()
	values := resolve(t, &config.Values{})

	deploy, err := Deployment(ctx, values, helloRef(values))
	require.NoError(t, err)

	assert.Equal(t, "mern-app-mern-microservices-hello-service", deploy.Name)
	assert.Equal(t, "default", deploy.Namespace)
	assert.Equal(t, int32(2), *deploy.Spec.Replicas)

	container := deploy.Spec.Template.Spec.Containers[0]
	assert.Equal(t, "docker.io/mernstack/hello-service:latest", container.Image)
	assert.Equal(t, corev1.PullPolicy("IfNotPresent"), container.ImagePullPolicy)
	assert.Equal(t, int32(3001), container.Ports[0].ContainerPort)

	// Selector labels match pod template labels exactly.
	assert.Equal(t, deploy.Spec.Selector.MatchLabels, deploy.Spec.Template.ObjectMeta.Labels)
	assert.Equal(t, chart.SelectorLabels(ctx, "hello-service"), deploy.Spec.Selector.MatchLabels)
}

// The selector must not move when mutable values change between renders.
func TestDeploymentSelectorStableAcrossUpgrades(t *testing.T) {
	ctx := testContext()

	before := resolve(t, &config.Values{})
	after := resolve(t, &config.Values{
		HelloService: config.Service{
			ReplicaCount: 7,
			Image:        config.Image{Tag: "v2"},
		},
		CommonLabels: map[string]string{"rollout": "canary"},
	})

	first, err := Deployment(ctx, before, helloRef(before))
	require.NoError(t, err)
	second, err := Deployment(ctx, after, helloRef(after))
	require.NoError(t, err)

	assert.Equal(t, first.Spec.Selector, second.Spec.Selector)
	assert.Equal(t, first.Spec.Template.ObjectMeta.Labels, second.Spec.Template.ObjectMeta.Labels)
}

func TestDeploymentPullPolicyFallback(t *testing.T) {
	values := resolve(t, &config.Values{
		Global: config.Global{PullPolicy: "Always"},
		HelloService: config.Service{
			Image: config.Image{PullPolicy: ""},
		},
	})

	deploy, err := Deployment(testContext(), values, helloRef(values))
	require.NoError(t, err)

	assert.Equal(t, corev1.PullPolicy("Always"), deploy.Spec.Template.Spec.Containers[0].ImagePullPolicy)
}

func TestDeploymentDatabaseEnv(t *testing.T) {
	values := resolve(t, &config.Values{
		Mongodb: config.Mongodb{ConnectionString: "mongodb://x"},
		HelloService: config.Service{
			Env: map[string]string{"LOG_LEVEL": "info"},
		},
	})

	deploy, err := Deployment(testContext(), values, helloRef(values))
	require.NoError(t, err)

	env := deploy.Spec.Template.Spec.Containers[0].Env
	require.Len(t, env, 2)

	assert.Equal(t, "LOG_LEVEL", env[0].Name)

	mongo := env[1]
	assert.Equal(t, "MONGODB_URI", mongo.Name)
	require.NotNil(t, mongo.ValueFrom)
	assert.Equal(t, "mern-app-mern-microservices-mongodb", mongo.ValueFrom.SecretKeyRef.Name)
	assert.Equal(t, "connection-string", mongo.ValueFrom.SecretKeyRef.Key)
}

func TestDeploymentExistingSecretReference(t *testing.T) {
	values := resolve(t, &config.Values{
		Mongodb: config.Mongodb{ExistingSecret: "external-mongo"},
	})

	deploy, err := Deployment(testContext(), values, helloRef(values))
	require.NoError(t, err)

	env := deploy.Spec.Template.Spec.Containers[0].Env
	require.Len(t, env, 1)
	assert.Equal(t, "external-mongo", env[0].ValueFrom.SecretKeyRef.Name)
}

func TestDeploymentFrontendHasNoDatabaseEnv(t *testing.T) {
	values := resolve(t, &config.Values{
		Mongodb: config.Mongodb{ConnectionString: "mongodb://x"},
	})

	ref := config.ServiceRef{Component: config.ComponentFrontend, Service: &values.Frontend}
	deploy, err := Deployment(testContext(), values, ref)
	require.NoError(t, err)

	assert.Empty(t, deploy.Spec.Template.Spec.Containers[0].Env)
}

func TestDeploymentProbes(t *testing.T) {
	values := resolve(t, &config.Values{})

	deploy, err := Deployment(testContext(), values, helloRef(values))
	require.NoError(t, err)

	container := deploy.Spec.Template.Spec.Containers[0]
	require.NotNil(t, container.LivenessProbe)
	require.NotNil(t, container.ReadinessProbe)
	assert.Equal(t, "/health", container.LivenessProbe.HTTPGet.Path)
	assert.Equal(t, int32(10), container.LivenessProbe.InitialDelaySeconds)

	// Disabled health check drops both probes.
	values = resolve(t, &config.Values{
		HelloService: config.Service{
			HealthCheck: config.HealthCheck{Enabled: ptr.To(false)},
		},
	})
	deploy, err = Deployment(testContext(), values, helloRef(values))
	require.NoError(t, err)
	assert.Nil(t, deploy.Spec.Template.Spec.Containers[0].LivenessProbe)
	assert.Nil(t, deploy.Spec.Template.Spec.Containers[0].ReadinessProbe)
}

func TestDeploymentProbesAreIndependent(t *testing.T) {
	values := resolve(t, &config.Values{})

	deploy, err := Deployment(testContext(), values, helloRef(values))
	require.NoError(t, err)

	container := deploy.Spec.Template.Spec.Containers[0]
	require.NotNil(t, container.LivenessProbe)
	require.NotNil(t, container.ReadinessProbe)
	assert.NotSame(t, container.LivenessProbe, container.ReadinessProbe)

	container.LivenessProbe.InitialDelaySeconds = 99
	assert.Equal(t, int32(10), container.ReadinessProbe.InitialDelaySeconds)
}

func TestDeploymentResources(t *testing.T) {
	values := resolve(t, &config.Values{})

	deploy, err := Deployment(testContext(), values, helloRef(values))
	require.NoError(t, err)

	resources := deploy.Spec.Template.Spec.Containers[0].Resources
	assert.Equal(t, resource.MustParse("100m"), resources.Requests[corev1.ResourceCPU])
	assert.Equal(t, resource.MustParse("256Mi"), resources.Limits[corev1.ResourceMemory])
}

func TestDeploymentInvalidQuantity(t *testing.T) {
	values := resolve(t, &config.Values{
		HelloService: config.Service{
			Resources: config.Resources{
				Requests: config.ResourceList{CPU: "not-a-quantity"},
			},
		},
	})

	_, err := Deployment(testContext(), values, helloRef(values))
	assert.ErrorContains(t, err, "not-a-quantity")
}

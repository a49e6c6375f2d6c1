package config

import (
	"k8s.io/utils/ptr"
)

// Component ids used in labels, ingress backends and pipeline targets.
const (
	ComponentHelloService   = "hello-service"
	ComponentProfileService = "profile-service"
	ComponentFrontend       = "frontend"
)

// DefaultPullPolicy is used when neither the service nor the global section
// sets an image pull policy.
const DefaultPullPolicy = "IfNotPresent"

// DefaultMongodbSecretKey is the key inside the MongoDB secret holding the
// connection string.
const DefaultMongodbSecretKey = "connection-string"

// DefaultDatabaseEnvVar is the environment variable backend services read
// the connection string from.
const DefaultDatabaseEnvVar = "MONGODB_URI"

// Defaults returns the chart's built-in configuration tree. Values files and
// --set overrides are merged on top of this.
func Defaults() *Values {
	return &Values{
		Global: Global{
			Registry: "docker.io",
		},
		HelloService: Service{
			Enabled:      ptr.To(true),
			Name:         ComponentHelloService,
			ReplicaCount: 2,
			Image: Image{
				Repository: "mernstack/hello-service",
				Tag:        "latest",
			},
			Service: ServicePort{
				Type:       "ClusterIP",
				Port:       80,
				TargetPort: 3001,
			},
			Resources: Resources{
				Requests: ResourceList{CPU: "100m", Memory: "128Mi"},
				Limits:   ResourceList{CPU: "250m", Memory: "256Mi"},
			},
			HealthCheck: HealthCheck{
				Enabled:             ptr.To(true),
				Path:                "/health",
				InitialDelaySeconds: 10,
				PeriodSeconds:       15,
				TimeoutSeconds:      3,
				FailureThreshold:    3,
			},
			Database: Database{
				Enabled: ptr.To(true),
				EnvVar:  DefaultDatabaseEnvVar,
			},
		},
		ProfileService: Service{
			Enabled:      ptr.To(true),
			Name:         ComponentProfileService,
			ReplicaCount: 2,
			Image: Image{
				Repository: "mernstack/profile-service",
				Tag:        "latest",
			},
			Service: ServicePort{
				Type:       "ClusterIP",
				Port:       80,
				TargetPort: 3002,
			},
			Resources: Resources{
				Requests: ResourceList{CPU: "100m", Memory: "128Mi"},
				Limits:   ResourceList{CPU: "250m", Memory: "256Mi"},
			},
			HealthCheck: HealthCheck{
				Enabled:             ptr.To(true),
				Path:                "/health",
				InitialDelaySeconds: 10,
				PeriodSeconds:       15,
				TimeoutSeconds:      3,
				FailureThreshold:    3,
			},
			Database: Database{
				Enabled: ptr.To(true),
				EnvVar:  DefaultDatabaseEnvVar,
			},
		},
		Frontend: Service{
			Enabled:      ptr.To(true),
			Name:         ComponentFrontend,
			ReplicaCount: 2,
			Image: Image{
				Repository: "mernstack/frontend",
				Tag:        "latest",
			},
			Service: ServicePort{
				Type:       "ClusterIP",
				Port:       80,
				TargetPort: 3000,
			},
			Resources: Resources{
				Requests: ResourceList{CPU: "100m", Memory: "128Mi"},
				Limits:   ResourceList{CPU: "200m", Memory: "256Mi"},
			},
			HealthCheck: HealthCheck{
				Enabled:             ptr.To(true),
				Path:                "/",
				InitialDelaySeconds: 5,
				PeriodSeconds:       15,
				TimeoutSeconds:      3,
				FailureThreshold:    3,
			},
			Database: Database{
				Enabled: ptr.To(false),
				EnvVar:  DefaultDatabaseEnvVar,
			},
		},
		Mongodb: Mongodb{
			CreateSecret: ptr.To(true),
			SecretKey:    DefaultMongodbSecretKey,
		},
		Ingress: Ingress{
			Enabled: ptr.To(false),
			Hosts: []IngressHost{
				{
					Host: "mern.local",
					Paths: []IngressPath{
						{Path: "/api/hello", PathType: "Prefix", Backend: ComponentHelloService},
						{Path: "/api/profile", PathType: "Prefix", Backend: ComponentProfileService},
						{Path: "/", PathType: "Prefix", Backend: ComponentFrontend},
					},
				},
			},
		},
		ServiceAccount: ServiceAccount{
			Create: ptr.To(false),
		},
	}
}

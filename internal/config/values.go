package config

import (
	corev1 "k8s.io/api/core/v1"
)

// Values is the full configuration tree for one render of the
// mern-microservices stack. Chart defaults, values files and --set overrides
// are merged into a single Values before anything is resolved from it.
type Values struct {
	Global Global `koanf:"global" json:"global"`

	HelloService   Service `koanf:"helloService" json:"helloService"`
	ProfileService Service `koanf:"profileService" json:"profileService"`
	Frontend       Service `koanf:"frontend" json:"frontend"`

	Mongodb        Mongodb        `koanf:"mongodb" json:"mongodb"`
	Ingress        Ingress        `koanf:"ingress" json:"ingress"`
	ServiceAccount ServiceAccount `koanf:"serviceAccount" json:"serviceAccount"`

	// Stack-wide scheduling and security settings, used when a service does
	// not set its own.
	PodSecurityContext *corev1.PodSecurityContext `koanf:"podSecurityContext" json:"podSecurityContext"`
	SecurityContext    *corev1.SecurityContext    `koanf:"securityContext" json:"securityContext"`
	NodeSelector       map[string]string          `koanf:"nodeSelector" json:"nodeSelector"`
	Tolerations        []corev1.Toleration        `koanf:"tolerations" json:"tolerations"`
	Affinity           *corev1.Affinity           `koanf:"affinity" json:"affinity"`

	NameOverride     string `koanf:"nameOverride" json:"nameOverride"`
	FullnameOverride string `koanf:"fullnameOverride" json:"fullnameOverride"`

	CommonLabels      map[string]string `koanf:"commonLabels" json:"commonLabels"`
	CommonAnnotations map[string]string `koanf:"commonAnnotations" json:"commonAnnotations"`
}

// Global holds values shared across all services, used as fallbacks for the
// matching per-service leaves.
type Global struct {
	// Registry is the default image registry.
	Registry string `koanf:"registry" json:"registry"`

	// PullPolicy is the fallback image pull policy when a service leaves its
	// own empty.
	PullPolicy string `koanf:"pullPolicy" json:"pullPolicy"`

	// ImagePullSecrets are names of secrets for pulling from private
	// registries.
	ImagePullSecrets []string `koanf:"imagePullSecrets" json:"imagePullSecrets"`
}

// Service describes one deployable service of the stack.
type Service struct {
	// Enabled gates emission of the service's Deployment and Service.
	Enabled *bool `koanf:"enabled" json:"enabled"`

	// Name is the service's short name, appended to the chart's full name.
	Name string `koanf:"name" json:"name"`

	// FullnameOverride replaces the derived resource name verbatim.
	FullnameOverride string `koanf:"fullnameOverride" json:"fullnameOverride"`

	ReplicaCount int32 `koanf:"replicaCount" json:"replicaCount"`

	Image       Image       `koanf:"image" json:"image"`
	Service     ServicePort `koanf:"service" json:"service"`
	Resources   Resources   `koanf:"resources" json:"resources"`
	HealthCheck HealthCheck `koanf:"healthCheck" json:"healthCheck"`
	Database    Database    `koanf:"database" json:"database"`

	// Env is rendered as container environment variables, sorted by name.
	Env map[string]string `koanf:"env" json:"env"`

	PodAnnotations map[string]string `koanf:"podAnnotations" json:"podAnnotations"`

	PodSecurityContext *corev1.PodSecurityContext `koanf:"podSecurityContext" json:"podSecurityContext"`
	SecurityContext    *corev1.SecurityContext    `koanf:"securityContext" json:"securityContext"`
	NodeSelector       map[string]string          `koanf:"nodeSelector" json:"nodeSelector"`
	Tolerations        []corev1.Toleration        `koanf:"tolerations" json:"tolerations"`
	Affinity           *corev1.Affinity           `koanf:"affinity" json:"affinity"`
}

// Image identifies the container image for a service. Registry and
// PullPolicy fall back to the global section when empty.
type Image struct {
	Registry   string `koanf:"registry" json:"registry"`
	Repository string `koanf:"repository" json:"repository"`
	Tag        string `koanf:"tag" json:"tag"`
	PullPolicy string `koanf:"pullPolicy" json:"pullPolicy"`
}

// ServicePort configures the Kubernetes Service in front of a Deployment.
type ServicePort struct {
	Type        string            `koanf:"type" json:"type"`
	Port        int32             `koanf:"port" json:"port"`
	TargetPort  int32             `koanf:"targetPort" json:"targetPort"`
	Annotations map[string]string `koanf:"annotations" json:"annotations"`
}

// Resources holds request/limit quantities as strings; they are parsed into
// resource.Quantity at emission time.
type Resources struct {
	Limits   ResourceList `koanf:"limits" json:"limits"`
	Requests ResourceList `koanf:"requests" json:"requests"`
}

// ResourceList is one side of a resource specification.
type ResourceList struct {
	CPU    string `koanf:"cpu" json:"cpu"`
	Memory string `koanf:"memory" json:"memory"`
}

// HealthCheck configures HTTP liveness and readiness probes.
type HealthCheck struct {
	Enabled             *bool  `koanf:"enabled" json:"enabled"`
	Path                string `koanf:"path" json:"path"`
	InitialDelaySeconds int32  `koanf:"initialDelaySeconds" json:"initialDelaySeconds"`
	PeriodSeconds       int32  `koanf:"periodSeconds" json:"periodSeconds"`
	TimeoutSeconds      int32  `koanf:"timeoutSeconds" json:"timeoutSeconds"`
	FailureThreshold    int32  `koanf:"failureThreshold" json:"failureThreshold"`
}

// Database controls whether a service receives the MongoDB connection string
// from the stack's secret.
type Database struct {
	Enabled *bool `koanf:"enabled" json:"enabled"`

	// EnvVar is the environment variable the connection string is injected
	// as.
	EnvVar string `koanf:"envVar" json:"envVar"`
}

// Mongodb configures the connection-string secret.
type Mongodb struct {
	// ConnectionString is the opaque credential. Empty means no secret is
	// rendered and no database env is injected.
	ConnectionString string `koanf:"connectionString" json:"connectionString"`

	// CreateSecret controls whether the chart owns secret creation. When
	// false the operator must create the secret out-of-band under the
	// resolved (or existing) name.
	CreateSecret *bool `koanf:"createSecret" json:"createSecret"`

	// ExistingSecret references an externally managed secret by name.
	ExistingSecret string `koanf:"existingSecret" json:"existingSecret"`

	// SecretKey is the key inside the secret holding the connection string.
	SecretKey string `koanf:"secretKey" json:"secretKey"`
}

// Ingress configures the optional Ingress in front of the stack.
type Ingress struct {
	Enabled     *bool             `koanf:"enabled" json:"enabled"`
	ClassName   string            `koanf:"className" json:"className"`
	Annotations map[string]string `koanf:"annotations" json:"annotations"`
	Hosts       []IngressHost     `koanf:"hosts" json:"hosts"`
	TLS         []IngressTLS      `koanf:"tls" json:"tls"`
}

// IngressHost is one host rule.
type IngressHost struct {
	Host  string        `koanf:"host" json:"host"`
	Paths []IngressPath `koanf:"paths" json:"paths"`
}

// IngressPath routes one path to a service of the stack, referenced by its
// component id (hello-service, profile-service, frontend).
type IngressPath struct {
	Path     string `koanf:"path" json:"path"`
	PathType string `koanf:"pathType" json:"pathType"`
	Backend  string `koanf:"backend" json:"backend"`
}

// IngressTLS is one TLS block.
type IngressTLS struct {
	SecretName string   `koanf:"secretName" json:"secretName"`
	Hosts      []string `koanf:"hosts" json:"hosts"`
}

// ServiceAccount configures the shared service account.
type ServiceAccount struct {
	Create      *bool             `koanf:"create" json:"create"`
	Name        string            `koanf:"name" json:"name"`
	Annotations map[string]string `koanf:"annotations" json:"annotations"`
}

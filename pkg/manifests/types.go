package manifests

import (
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/dynamic"
)

// ApplyConfig defines how a rendered manifest is applied to the cluster
type ApplyConfig struct {
	// Namespace to apply the manifests to (will override namespace specified in manifest)
	Namespace string `koanf:"namespace"`

	// Whether to create the namespace if it doesn't exist (defaults to true like Helm)
	CreateNamespace bool `koanf:"createNamespace"`
}

// Client provides methods for applying Kubernetes manifests
type Client struct {
	dynamicClient dynamic.Interface
	restMapper    meta.RESTMapper
	namespace     string
}

package helm

// ReleaseConfig contains the configuration for a Helm release
type ReleaseConfig struct {
	// Namespace is the Kubernetes namespace where the Helm release will be deployed.
	Namespace string `koanf:"namespace"`

	// Name is the name of the Helm release.
	Name string `koanf:"name"`

	// Values are the resolved configuration values recorded on the release.
	Values map[string]interface{} `koanf:"values"`
}

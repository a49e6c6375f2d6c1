package cli

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/version"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/config"
)

// defaultReleaseName is used when --release is not given
const defaultReleaseName = "mern-app"

// loadValues merges defaults, values files and --set overrides into one
// resolved configuration tree
func loadValues() (*config.Values, error) {
	return config.Load(valuesFiles, setValues)
}

// resolveNamespace picks the target namespace from the kubectl-style flags
func resolveNamespace(configFlags *genericclioptions.ConfigFlags) string {
	if configFlags.Namespace != nil && *configFlags.Namespace != "" {
		return *configFlags.Namespace
	}
	return "default"
}

// newReleaseContext builds the release context from the resolved values
func newReleaseContext(releaseName, namespace string, values *config.Values) chart.ReleaseContext {
	releaseCtx := chart.NewReleaseContext(releaseName, namespace)
	releaseCtx.NameOverride = values.NameOverride
	releaseCtx.FullnameOverride = values.FullnameOverride
	return releaseCtx
}

// detectKubeVersion queries the cluster for its version so manifest shapes
// can be gated on what the API server supports
func detectKubeVersion(configFlags *genericclioptions.ConfigFlags) (*version.Version, error) {
	discovery, err := configFlags.ToDiscoveryClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	info, err := discovery.ServerVersion()
	if err != nil {
		return nil, fmt.Errorf("failed to query server version: %w", err)
	}

	v, err := version.ParseGeneric(info.GitVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server version %q: %w", info.GitVersion, err)
	}

	return v, nil
}

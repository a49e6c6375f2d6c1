package chart

import (
	"k8s.io/apimachinery/pkg/util/version"
)

const (
	// ChartName is the name of the chart this tool renders.
	ChartName = "mern-microservices"

	// ChartVersion is the version recorded in the helm.sh/chart label.
	ChartVersion = "0.1.0"

	// AppVersion is the upstream application version, recorded in the
	// app.kubernetes.io/version label when set.
	AppVersion = "1.0.0"
)

// ReleaseContext carries everything a resolution function needs to know about
// the release being rendered. It is built once per render and never mutated;
// every resolver takes it explicitly instead of reading ambient state.
type ReleaseContext struct {
	// ChartName is the chart name, before any nameOverride is applied.
	ChartName string

	// ChartVersion is the chart version used in the helm.sh/chart label.
	ChartVersion string

	// AppVersion is the application version label value. Empty means the
	// label is omitted.
	AppVersion string

	// ReleaseName is the release instance name.
	ReleaseName string

	// Namespace is the target namespace for all rendered resources.
	Namespace string

	// NameOverride replaces the chart name in derived names and in the
	// app.kubernetes.io/name label when set.
	NameOverride string

	// FullnameOverride replaces the release-name-based full name when set.
	FullnameOverride string

	// KubeVersion is the target cluster's reported version. Nil means
	// capabilities default to the most recent API shapes.
	KubeVersion *version.Version
}

// NewReleaseContext returns a ReleaseContext for the given release with the
// built-in chart identity.
func NewReleaseContext(releaseName, namespace string) ReleaseContext {
	return ReleaseContext{
		ChartName:    ChartName,
		ChartVersion: ChartVersion,
		AppVersion:   AppVersion,
		ReleaseName:  releaseName,
		Namespace:    namespace,
	}
}

// Name returns the effective chart name, honoring the name override.
func (c ReleaseContext) Name() string {
	if c.NameOverride != "" {
		return c.NameOverride
	}
	return c.ChartName
}

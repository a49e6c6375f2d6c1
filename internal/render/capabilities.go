package render

import (
	"k8s.io/apimachinery/pkg/util/version"
)

// Ingress API thresholds: 1.18 introduced pathType and ingressClassName,
// 1.19 introduced the structured service backend (networking.k8s.io/v1).
var (
	pathTypeMinVersion          = version.MustParseGeneric("1.18.0")
	structuredBackendMinVersion = version.MustParseGeneric("1.19.0")
)

// supportsIngressPathType reports whether the cluster understands pathType
// and ingressClassName. A nil version means no cluster was consulted and the
// current API shapes are assumed.
func supportsIngressPathType(v *version.Version) bool {
	return v == nil || v.AtLeast(pathTypeMinVersion)
}

// supportsStructuredIngressBackend reports whether the cluster serves the
// networking.k8s.io/v1 Ingress with the structured service.name/service.port
// backend form.
func supportsStructuredIngressBackend(v *version.Version) bool {
	return v == nil || v.AtLeast(structuredBackendMinVersion)
}

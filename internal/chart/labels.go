package chart

import (
	"maps"
	"strings"
)

// Standard Kubernetes label keys following kubernetes.io conventions.
//
// See: https://kubernetes.io/docs/concepts/overview/working-with-objects/common-labels/
const (
	// LabelAppName is the standard label key for the application name.
	LabelAppName = "app.kubernetes.io/name"

	// LabelAppInstance is the standard label key for the unique instance name.
	LabelAppInstance = "app.kubernetes.io/instance"

	// LabelAppVersion is the standard label key for the application version.
	LabelAppVersion = "app.kubernetes.io/version"

	// LabelAppComponent is the standard label key for the component within
	// the application.
	LabelAppComponent = "app.kubernetes.io/component"

	// LabelAppManagedBy is the standard label key for the tool managing the
	// resource.
	LabelAppManagedBy = "app.kubernetes.io/managed-by"

	// LabelChart records the chart name and version that produced the
	// resource.
	LabelChart = "helm.sh/chart"
)

// ManagedBy identifies this tool in the managed-by label.
const ManagedBy = "mernctl"

// ChartLabelValue returns the helm.sh/chart label value. '+' is not a valid
// label character, so build metadata separators are rewritten.
func ChartLabelValue(ctx ReleaseContext) string {
	v := ctx.ChartName + "-" + ctx.ChartVersion
	return Truncate(strings.ReplaceAll(v, "+", "_"))
}

// SelectorLabels returns the labels a workload uses to match its pods.
//
// These are a pure function of the chart name, release name and component id.
// Kubernetes forbids mutating a Deployment's selector, so nothing mutable
// per-release may ever be added here.
func SelectorLabels(ctx ReleaseContext, component string) map[string]string {
	return map[string]string{
		LabelAppName:      ctx.Name(),
		LabelAppInstance:  ctx.ReleaseName,
		LabelAppComponent: component,
	}
}

// Labels returns the full metadata label set for a component's resources:
// the selector labels plus chart identity, app version, the managed-by
// marker, and any release-wide common labels. Standard labels take
// precedence over common labels so user values cannot clobber identity keys.
func Labels(ctx ReleaseContext, component string, commonLabels map[string]string) map[string]string {
	labels := make(map[string]string, len(commonLabels)+6)
	maps.Copy(labels, commonLabels)

	maps.Copy(labels, SelectorLabels(ctx, component))
	labels[LabelChart] = ChartLabelValue(ctx)
	labels[LabelAppManagedBy] = ManagedBy
	if ctx.AppVersion != "" {
		labels[LabelAppVersion] = ctx.AppVersion
	}
	return labels
}

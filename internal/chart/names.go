package chart

import (
	"strings"
)

// maxNameLength is the DNS-1123 label length limit enforced on every
// resolved resource name.
const maxNameLength = 63

// Truncate enforces the DNS-1123 length limit on a resource name, stripping
// any trailing hyphen the cut may leave behind.
//
// Two distinct inputs can truncate to the same name; this mirrors the chart's
// behavior and is intentionally not detected here.
func Truncate(name string) string {
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	return strings.TrimSuffix(name, "-")
}

// Fullname resolves the chart's base full name for the release.
//
// Precedence: the explicit fullname override wins outright; otherwise the
// name is derived from the release name, with the chart name appended only
// when the release name does not already contain it.
func Fullname(ctx ReleaseContext) string {
	if ctx.FullnameOverride != "" {
		return Truncate(ctx.FullnameOverride)
	}

	name := ctx.Name()
	if strings.Contains(ctx.ReleaseName, name) {
		return Truncate(ctx.ReleaseName)
	}
	return Truncate(ctx.ReleaseName + "-" + name)
}

// ServiceFullname resolves the resource name for one service of the chart.
// A per-service fullname override is used verbatim; otherwise the service's
// short name is appended to the chart's base full name.
func ServiceFullname(ctx ReleaseContext, serviceName, fullnameOverride string) string {
	if fullnameOverride != "" {
		return Truncate(fullnameOverride)
	}
	return Truncate(Fullname(ctx) + "-" + serviceName)
}

// MongodbSecretName resolves the name of the chart-managed MongoDB secret.
func MongodbSecretName(ctx ReleaseContext) string {
	return Truncate(Fullname(ctx) + "-mongodb")
}

// ServiceAccountName resolves the service account name. An explicit name
// wins; otherwise the chart's full name is used when the chart creates the
// account, and "default" when it does not.
func ServiceAccountName(ctx ReleaseContext, create bool, name string) string {
	if name != "" {
		return Truncate(name)
	}
	if create {
		return Fullname(ctx)
	}
	return "default"
}

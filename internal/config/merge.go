package config

import (
	"fmt"
	"sort"

	"dario.cat/mergo"
	corev1 "k8s.io/api/core/v1"
)

// Resolve merges the loaded configuration over the chart defaults and
// returns the effective values. Only keys the input actually sets replace
// defaults; everything else keeps the built-in value. Pointer leaves are
// replaced without dereferencing, so an explicit `enabled: false` overrides
// a default of true while an unset leaf keeps it.
func Resolve(loaded *Values) (*Values, error) {
	resolved := Defaults()

	if err := mergo.Merge(resolved, loaded, mergo.WithOverride, mergo.WithoutDereference); err != nil {
		return nil, fmt.Errorf("failed to merge values: %w", err)
	}

	return resolved, nil
}

// ServiceRef pairs a service's component id with its resolved descriptor.
type ServiceRef struct {
	// Component is the stable component id used in labels and selectors.
	Component string

	Service *Service
}

// Services returns the three declared services in their fixed render order.
func (v *Values) Services() []ServiceRef {
	return []ServiceRef{
		{Component: ComponentHelloService, Service: &v.HelloService},
		{Component: ComponentProfileService, Service: &v.ProfileService},
		{Component: ComponentFrontend, Service: &v.Frontend},
	}
}

// ServiceByComponent looks a service up by its component id.
func (v *Values) ServiceByComponent(component string) (*Service, error) {
	for _, ref := range v.Services() {
		if ref.Component == component {
			return ref.Service, nil
		}
	}
	return nil, fmt.Errorf("unknown service component %q", component)
}

// ImageRef assembles the image reference string for a service, falling back
// to the global registry when the service does not set one.
func (v *Values) ImageRef(svc *Service) string {
	registry := svc.Image.Registry
	if registry == "" {
		registry = v.Global.Registry
	}

	tag := svc.Image.Tag
	if tag == "" {
		tag = "latest"
	}

	if registry == "" {
		return fmt.Sprintf("%s:%s", svc.Image.Repository, tag)
	}
	return fmt.Sprintf("%s/%s:%s", registry, svc.Image.Repository, tag)
}

// PullPolicy resolves the effective image pull policy: the service's own
// value, else global.pullPolicy, else the built-in default. An empty string
// at the leaf is the fallback sentinel.
func (v *Values) PullPolicy(svc *Service) string {
	if svc.Image.PullPolicy != "" {
		return svc.Image.PullPolicy
	}
	if v.Global.PullPolicy != "" {
		return v.Global.PullPolicy
	}
	return DefaultPullPolicy
}

// EnvVars returns a service's environment as a deterministically ordered
// list. Map iteration order must never leak into rendered output.
func (v *Values) EnvVars(svc *Service) []corev1.EnvVar {
	names := make([]string, 0, len(svc.Env))
	for name := range svc.Env {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]corev1.EnvVar, 0, len(names))
	for _, name := range names {
		vars = append(vars, corev1.EnvVar{Name: name, Value: svc.Env[name]})
	}
	return vars
}

// NodeSelectorFor returns the service's node selector, falling back to the
// stack-wide one.
func (v *Values) NodeSelectorFor(svc *Service) map[string]string {
	if len(svc.NodeSelector) > 0 {
		return svc.NodeSelector
	}
	return v.NodeSelector
}

// TolerationsFor returns the service's tolerations, falling back to the
// stack-wide ones.
func (v *Values) TolerationsFor(svc *Service) []corev1.Toleration {
	if len(svc.Tolerations) > 0 {
		return svc.Tolerations
	}
	return v.Tolerations
}

// AffinityFor returns the service's affinity, falling back to the stack-wide
// one.
func (v *Values) AffinityFor(svc *Service) *corev1.Affinity {
	if svc.Affinity != nil {
		return svc.Affinity
	}
	return v.Affinity
}

// PodSecurityContextFor returns the service's pod security context, falling
// back to the stack-wide one.
func (v *Values) PodSecurityContextFor(svc *Service) *corev1.PodSecurityContext {
	if svc.PodSecurityContext != nil {
		return svc.PodSecurityContext
	}
	return v.PodSecurityContext
}

// SecurityContextFor returns the service's container security context,
// falling back to the stack-wide one.
func (v *Values) SecurityContextFor(svc *Service) *corev1.SecurityContext {
	if svc.SecurityContext != nil {
		return svc.SecurityContext
	}
	return v.SecurityContext
}

// DatabaseEnabled reports whether a service receives the MongoDB connection
// string. It requires both the service opting in and a connection source
// being configured.
func (v *Values) DatabaseEnabled(svc *Service) bool {
	if svc.Database.Enabled == nil || !*svc.Database.Enabled {
		return false
	}
	return v.Mongodb.ConnectionString != "" || v.Mongodb.ExistingSecret != ""
}

// IsEnabled reports whether a service's manifests are emitted at all.
func (s *Service) IsEnabled() bool {
	return s.Enabled != nil && *s.Enabled
}

package render

import (
	"fmt"

	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/config"
)

// Ingress emits the stack's Ingress, or nil when it is disabled. The API
// shape depends on what the target cluster serves: clusters at 1.19 or newer
// get the networking.k8s.io/v1 structured service backend; older clusters
// get the v1beta1 serviceName/servicePort form, with pathType and
// ingressClassName included only from 1.18 on.
func Ingress(ctx chart.ReleaseContext, v *config.Values) (*Document, error) {
	if v.Ingress.Enabled == nil || !*v.Ingress.Enabled {
		return nil, nil
	}

	name := chart.Truncate(chart.Fullname(ctx) + "-ingress")

	if supportsStructuredIngressBackend(ctx.KubeVersion) {
		ing, err := structuredIngress(ctx, v, name)
		if err != nil {
			return nil, err
		}
		return &Document{Kind: "Ingress", Name: name, Object: ing}, nil
	}

	ing, err := legacyIngress(ctx, v, name)
	if err != nil {
		return nil, err
	}
	return &Document{Kind: "Ingress", Name: name, Object: ing}, nil
}

func structuredIngress(ctx chart.ReleaseContext, v *config.Values, name string) (*networkingv1.Ingress, error) {
	var rules []networkingv1.IngressRule
	for _, host := range v.Ingress.Hosts {
		var paths []networkingv1.HTTPIngressPath
		for _, p := range host.Paths {
			backendName, backendPort, err := resolveBackend(ctx, v, p.Backend)
			if err != nil {
				return nil, err
			}

			pathType := networkingv1.PathType(pathTypeOrDefault(p.PathType))
			paths = append(paths, networkingv1.HTTPIngressPath{
				Path:     p.Path,
				PathType: &pathType,
				Backend: networkingv1.IngressBackend{
					Service: &networkingv1.IngressServiceBackend{
						Name: backendName,
						Port: networkingv1.ServiceBackendPort{Number: backendPort},
					},
				},
			})
		}

		rules = append(rules, networkingv1.IngressRule{
			Host: host.Host,
			IngressRuleValue: networkingv1.IngressRuleValue{
				HTTP: &networkingv1.HTTPIngressRuleValue{Paths: paths},
			},
		})
	}

	var tls []networkingv1.IngressTLS
	for _, t := range v.Ingress.TLS {
		tls = append(tls, networkingv1.IngressTLS{Hosts: t.Hosts, SecretName: t.SecretName})
	}

	ing := &networkingv1.Ingress{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "networking.k8s.io/v1",
			Kind:       "Ingress",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:        name,
			Namespace:   ctx.Namespace,
			Labels:      chart.Labels(ctx, "ingress", v.CommonLabels),
			Annotations: mergeAnnotations(v.CommonAnnotations, v.Ingress.Annotations),
		},
		Spec: networkingv1.IngressSpec{
			Rules: rules,
			TLS:   tls,
		},
	}

	if v.Ingress.ClassName != "" {
		className := v.Ingress.ClassName
		ing.Spec.IngressClassName = &className
	}

	return ing, nil
}

// legacyIngress builds the pre-1.19 shape. The typed v1beta1 Ingress is gone
// from current client libraries, so the document is assembled as an
// unstructured object.
func legacyIngress(ctx chart.ReleaseContext, v *config.Values, name string) (*unstructured.Unstructured, error) {
	withPathType := supportsIngressPathType(ctx.KubeVersion)

	var rules []interface{}
	for _, host := range v.Ingress.Hosts {
		var paths []interface{}
		for _, p := range host.Paths {
			backendName, backendPort, err := resolveBackend(ctx, v, p.Backend)
			if err != nil {
				return nil, err
			}

			path := map[string]interface{}{
				"path": p.Path,
				"backend": map[string]interface{}{
					"serviceName": backendName,
					"servicePort": int64(backendPort),
				},
			}
			if withPathType {
				path["pathType"] = pathTypeOrDefault(p.PathType)
			}
			paths = append(paths, path)
		}

		rules = append(rules, map[string]interface{}{
			"host": host.Host,
			"http": map[string]interface{}{"paths": paths},
		})
	}

	spec := map[string]interface{}{"rules": rules}
	if withPathType && v.Ingress.ClassName != "" {
		spec["ingressClassName"] = v.Ingress.ClassName
	}

	if len(v.Ingress.TLS) > 0 {
		var tls []interface{}
		for _, t := range v.Ingress.TLS {
			hosts := make([]interface{}, 0, len(t.Hosts))
			for _, h := range t.Hosts {
				hosts = append(hosts, h)
			}
			tls = append(tls, map[string]interface{}{
				"hosts":      hosts,
				"secretName": t.SecretName,
			})
		}
		spec["tls"] = tls
	}

	metadata := map[string]interface{}{
		"name":      name,
		"namespace": ctx.Namespace,
		"labels":    toInterfaceMap(chart.Labels(ctx, "ingress", v.CommonLabels)),
	}
	if annotations := mergeAnnotations(v.CommonAnnotations, v.Ingress.Annotations); len(annotations) > 0 {
		metadata["annotations"] = toInterfaceMap(annotations)
	}

	return &unstructured.Unstructured{
		Object: map[string]interface{}{
			"apiVersion": "networking.k8s.io/v1beta1",
			"kind":       "Ingress",
			"metadata":   metadata,
			"spec":       spec,
		},
	}, nil
}

// resolveBackend maps an ingress path's component id to the resolved Service
// name and port. Unknown ids are configuration errors.
func resolveBackend(ctx chart.ReleaseContext, v *config.Values, component string) (string, int32, error) {
	svc, err := v.ServiceByComponent(component)
	if err != nil {
		return "", 0, fmt.Errorf("ingress backend: %w", err)
	}
	return chart.ServiceFullname(ctx, svc.Name, svc.FullnameOverride), svc.Service.Port, nil
}

func pathTypeOrDefault(pathType string) string {
	if pathType == "" {
		return "Prefix"
	}
	return pathType
}

func toInterfaceMap(in map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

package render

import (
	"maps"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/config"
)

// Service emits the Service in front of one service's Deployment. The
// selector matches the Deployment's pod labels exactly.
func Service(ctx chart.ReleaseContext, v *config.Values, ref config.ServiceRef) *corev1.Service {
	svc := ref.Service
	name := chart.ServiceFullname(ctx, svc.Name, svc.FullnameOverride)

	serviceType := svc.Service.Type
	if serviceType == "" {
		serviceType = "ClusterIP"
	}

	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:        name,
			Namespace:   ctx.Namespace,
			Labels:      chart.Labels(ctx, ref.Component, v.CommonLabels),
			Annotations: mergeAnnotations(v.CommonAnnotations, svc.Service.Annotations),
		},
		Spec: corev1.ServiceSpec{
			Type: corev1.ServiceType(serviceType),
			Ports: []corev1.ServicePort{
				{
					Name:       "http",
					Port:       svc.Service.Port,
					TargetPort: intstr.FromInt32(svc.Service.TargetPort),
					Protocol:   corev1.ProtocolTCP,
				},
			},
			Selector: chart.SelectorLabels(ctx, ref.Component),
		},
	}
}

// mergeAnnotations overlays resource-specific annotations on the
// release-wide common ones.
func mergeAnnotations(common, specific map[string]string) map[string]string {
	if len(common) == 0 && len(specific) == 0 {
		return nil
	}

	out := make(map[string]string, len(common)+len(specific))
	maps.Copy(out, common)
	maps.Copy(out, specific)
	return out
}

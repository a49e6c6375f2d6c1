package render

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/config"
)

// ServiceAccount emits the shared service account, or nil when the chart is
// not configured to create one.
func ServiceAccount(ctx chart.ReleaseContext, v *config.Values) *corev1.ServiceAccount {
	if v.ServiceAccount.Create == nil || !*v.ServiceAccount.Create {
		return nil
	}

	return &corev1.ServiceAccount{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ServiceAccount",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:        chart.ServiceAccountName(ctx, true, v.ServiceAccount.Name),
			Namespace:   ctx.Namespace,
			Labels:      chart.Labels(ctx, "serviceaccount", v.CommonLabels),
			Annotations: mergeAnnotations(v.CommonAnnotations, v.ServiceAccount.Annotations),
		},
	}
}

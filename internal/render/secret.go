package render

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/config"
)

// Secret emits the chart-managed MongoDB connection secret. It returns nil
// when no connection string is configured, when the chart does not own
// secret creation, or when an externally managed secret is referenced. In
// those cases the operator provides the secret out-of-band.
func Secret(ctx chart.ReleaseContext, v *config.Values) *corev1.Secret {
	if v.Mongodb.ConnectionString == "" {
		return nil
	}
	if v.Mongodb.CreateSecret == nil || !*v.Mongodb.CreateSecret {
		return nil
	}
	if v.Mongodb.ExistingSecret != "" {
		return nil
	}

	key := v.Mongodb.SecretKey
	if key == "" {
		key = config.DefaultMongodbSecretKey
	}

	return &corev1.Secret{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Secret",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:        chart.MongodbSecretName(ctx),
			Namespace:   ctx.Namespace,
			Labels:      chart.Labels(ctx, "mongodb", v.CommonLabels),
			Annotations: copyStringMap(v.CommonAnnotations),
		},
		Type: corev1.SecretTypeOpaque,
		Data: map[string][]byte{
			key: []byte(v.Mongodb.ConnectionString),
		},
	}
}

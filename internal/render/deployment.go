package render

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/config"
)

// Deployment emits the Deployment for one service.
func Deployment(ctx chart.ReleaseContext, v *config.Values, ref config.ServiceRef) (*appsv1.Deployment, error) {
	svc := ref.Service
	name := chart.ServiceFullname(ctx, svc.Name, svc.FullnameOverride)

	resources, err := parseResources(svc.Resources)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", ref.Component, err)
	}

	container := corev1.Container{
		Name:            svc.Name,
		Image:           v.ImageRef(svc),
		ImagePullPolicy: corev1.PullPolicy(v.PullPolicy(svc)),
		Ports: []corev1.ContainerPort{
			{
				Name:          "http",
				ContainerPort: svc.Service.TargetPort,
				Protocol:      corev1.ProtocolTCP,
			},
		},
		Env:             containerEnv(ctx, v, svc),
		Resources:       resources,
		SecurityContext: v.SecurityContextFor(svc),
	}

	if svc.HealthCheck.Enabled != nil && *svc.HealthCheck.Enabled {
		// Separate values, so tuning one probe later cannot leak into the
		// other through a shared pointer.
		container.LivenessProbe = httpProbe(svc)
		container.ReadinessProbe = httpProbe(svc)
	}

	replicas := svc.ReplicaCount

	deploy := &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:        name,
			Namespace:   ctx.Namespace,
			Labels:      chart.Labels(ctx, ref.Component, v.CommonLabels),
			Annotations: copyStringMap(v.CommonAnnotations),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{
				MatchLabels: chart.SelectorLabels(ctx, ref.Component),
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels:      chart.SelectorLabels(ctx, ref.Component),
					Annotations: copyStringMap(svc.PodAnnotations),
				},
				Spec: corev1.PodSpec{
					ServiceAccountName: chart.ServiceAccountName(ctx, saCreate(v), v.ServiceAccount.Name),
					SecurityContext:    v.PodSecurityContextFor(svc),
					Containers:         []corev1.Container{container},
					NodeSelector:       v.NodeSelectorFor(svc),
					Tolerations:        v.TolerationsFor(svc),
					Affinity:           v.AffinityFor(svc),
					ImagePullSecrets:   pullSecrets(v),
				},
			},
		},
	}

	return deploy, nil
}

func containerEnv(ctx chart.ReleaseContext, v *config.Values, svc *config.Service) []corev1.EnvVar {
	env := v.EnvVars(svc)

	if v.DatabaseEnabled(svc) {
		secretName := v.Mongodb.ExistingSecret
		if secretName == "" {
			secretName = chart.MongodbSecretName(ctx)
		}

		envVar := svc.Database.EnvVar
		if envVar == "" {
			envVar = config.DefaultDatabaseEnvVar
		}

		key := v.Mongodb.SecretKey
		if key == "" {
			key = config.DefaultMongodbSecretKey
		}

		env = append(env, corev1.EnvVar{
			Name: envVar,
			ValueFrom: &corev1.EnvVarSource{
				SecretKeyRef: &corev1.SecretKeySelector{
					LocalObjectReference: corev1.LocalObjectReference{Name: secretName},
					Key:                  key,
				},
			},
		})
	}

	return env
}

func httpProbe(svc *config.Service) *corev1.Probe {
	path := svc.HealthCheck.Path
	if path == "" {
		path = "/"
	}

	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{
				Path: path,
				Port: intstr.FromInt32(svc.Service.TargetPort),
			},
		},
		InitialDelaySeconds: svc.HealthCheck.InitialDelaySeconds,
		PeriodSeconds:       svc.HealthCheck.PeriodSeconds,
		TimeoutSeconds:      svc.HealthCheck.TimeoutSeconds,
		FailureThreshold:    svc.HealthCheck.FailureThreshold,
	}
}

func parseResources(r config.Resources) (corev1.ResourceRequirements, error) {
	requirements := corev1.ResourceRequirements{}

	limits, err := parseResourceList(r.Limits)
	if err != nil {
		return requirements, fmt.Errorf("invalid resource limits: %w", err)
	}
	requests, err := parseResourceList(r.Requests)
	if err != nil {
		return requirements, fmt.Errorf("invalid resource requests: %w", err)
	}

	requirements.Limits = limits
	requirements.Requests = requests
	return requirements, nil
}

func parseResourceList(l config.ResourceList) (corev1.ResourceList, error) {
	if l.CPU == "" && l.Memory == "" {
		return nil, nil
	}

	out := corev1.ResourceList{}
	if l.CPU != "" {
		q, err := resource.ParseQuantity(l.CPU)
		if err != nil {
			return nil, fmt.Errorf("cpu %q: %w", l.CPU, err)
		}
		out[corev1.ResourceCPU] = q
	}
	if l.Memory != "" {
		q, err := resource.ParseQuantity(l.Memory)
		if err != nil {
			return nil, fmt.Errorf("memory %q: %w", l.Memory, err)
		}
		out[corev1.ResourceMemory] = q
	}
	return out, nil
}

func pullSecrets(v *config.Values) []corev1.LocalObjectReference {
	if len(v.Global.ImagePullSecrets) == 0 {
		return nil
	}

	refs := make([]corev1.LocalObjectReference, 0, len(v.Global.ImagePullSecrets))
	for _, name := range v.Global.ImagePullSecrets {
		refs = append(refs, corev1.LocalObjectReference{Name: name})
	}
	return refs
}

func saCreate(v *config.Values) bool {
	return v.ServiceAccount.Create != nil && *v.ServiceAccount.Create
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, val := range in {
		out[k] = val
	}
	return out
}

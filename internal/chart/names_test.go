package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullname(t *testing.T) {
	tests := []struct {
		name string
		ctx  ReleaseContext
		want string
	}{
		{
			name: "release name concatenated with chart name",
			ctx:  ReleaseContext{ChartName: "mern-microservices", ReleaseName: "mern-app"},
			want: "mern-app-mern-microservices",
		},
		{
			name: "release name already contains chart name",
			ctx:  ReleaseContext{ChartName: "mern-microservices", ReleaseName: "mern-microservices-prod"},
			want: "mern-microservices-prod",
		},
		{
			name: "fullname override wins",
			ctx: ReleaseContext{
				ChartName:        "mern-microservices",
				ReleaseName:      "mern-app",
				FullnameOverride: "custom-stack",
			},
			want: "custom-stack",
		},
		{
			name: "name override replaces chart name",
			ctx: ReleaseContext{
				ChartName:    "mern-microservices",
				ReleaseName:  "mern-app",
				NameOverride: "mern",
			},
			want: "mern-app-mern",
		},
		{
			name: "long names truncated",
			ctx: ReleaseContext{
				ChartName:   "mern-microservices",
				ReleaseName: strings.Repeat("a", 50),
			},
			want: strings.Repeat("a", 50) + "-mern-microse",
		},
		{
			name: "trailing hyphen stripped after truncation",
			ctx: ReleaseContext{
				ChartName:   "mern-microservices",
				ReleaseName: strings.Repeat("a", 62),
			},
			want: strings.Repeat("a", 62),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fullname(tt.ctx)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), 63)
			assert.False(t, strings.HasSuffix(got, "-"))
		})
	}
}

func TestServiceFullname(t *testing.T) {
	ctx := ReleaseContext{ChartName: "mern-microservices", ReleaseName: "mern-app"}

	tests := []struct {
		name             string
		serviceName      string
		fullnameOverride string
		want             string
	}{
		{
			name:        "derived from base full name",
			serviceName: "hello-service",
			want:        "mern-app-mern-microservices-hello-service",
		},
		{
			name:             "per-service override wins verbatim",
			serviceName:      "hello-service",
			fullnameOverride: "hello",
			want:             "hello",
		},
		{
			name:        "frontend",
			serviceName: "frontend",
			want:        "mern-app-mern-microservices-frontend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ServiceFullname(ctx, tt.serviceName, tt.fullnameOverride)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Per-service overrides must win regardless of the global override or the
// release name.
func TestServiceFullnameOverridePrecedence(t *testing.T) {
	ctx := ReleaseContext{
		ChartName:        "mern-microservices",
		ReleaseName:      "whatever",
		FullnameOverride: "global-override",
	}

	assert.Equal(t, "svc-override", ServiceFullname(ctx, "frontend", "svc-override"))
	assert.Equal(t, "global-override-frontend", ServiceFullname(ctx, "frontend", ""))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short name untouched", in: "frontend", want: "frontend"},
		{name: "exactly 63 kept", in: strings.Repeat("x", 63), want: strings.Repeat("x", 63)},
		{name: "cut to 63", in: strings.Repeat("x", 80), want: strings.Repeat("x", 63)},
		{name: "trailing hyphen stripped after cut", in: strings.Repeat("x", 62) + "-suffix", want: strings.Repeat("x", 62)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), 63)
		})
	}
}

func TestServiceAccountName(t *testing.T) {
	ctx := ReleaseContext{ChartName: "mern-microservices", ReleaseName: "mern-app"}

	assert.Equal(t, "mern-app-mern-microservices", ServiceAccountName(ctx, true, ""))
	assert.Equal(t, "custom-sa", ServiceAccountName(ctx, true, "custom-sa"))
	assert.Equal(t, "default", ServiceAccountName(ctx, false, ""))
}

package workflows

import (
	"fmt"
	"strings"

	flow "github.com/noneback/go-taskflow"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/config"
	"github.com/mernstack/mernctl/internal/render"
	"github.com/mernstack/mernctl/pkg/helm"
)

// NewReleaseDeployment renders the stack for the given release context and
// packages the result as an in-memory chart ready to install or upgrade.
func NewReleaseDeployment(configFlags *genericclioptions.ConfigFlags, releaseCtx chart.ReleaseContext, values *config.Values) (*ReleaseDeployment, error) {
	renderer := render.New(releaseCtx, values)

	docs, err := renderer.Render()
	if err != nil {
		return nil, fmt.Errorf("failed to render manifests: %w", err)
	}

	manifest, err := render.Manifest(docs)
	if err != nil {
		return nil, err
	}

	templates := make(map[string]string, len(docs))
	for _, doc := range docs {
		out, err := doc.Marshal()
		if err != nil {
			return nil, err
		}
		path := fmt.Sprintf("templates/%s-%s.yaml", strings.ToLower(doc.Kind), doc.Name)
		templates[path] = string(out)
	}

	ch := helm.BuildChart(helm.ChartMeta{
		Name:       releaseCtx.ChartName,
		Version:    releaseCtx.ChartVersion,
		AppVersion: releaseCtx.AppVersion,
	}, templates)

	valuesMap, err := helm.ValuesMap(values)
	if err != nil {
		return nil, err
	}

	client, err := helm.NewClient(configFlags, releaseCtx.Namespace)
	if err != nil {
		return nil, err
	}

	return &ReleaseDeployment{
		Client: client,
		Chart:  ch,
		Release: &helm.ReleaseConfig{
			Namespace: releaseCtx.Namespace,
			Name:      releaseCtx.ReleaseName,
			Values:    helm.AddConfigHash(valuesMap),
		},
		Manifest: manifest,
	}, nil
}

// CreateDeployWorkflow creates and returns a deployment TaskFlow for the stack
func CreateDeployWorkflow(configFlags *genericclioptions.ConfigFlags, releaseCtx chart.ReleaseContext, values *config.Values) (*flow.TaskFlow, error) {
	deployment, err := NewReleaseDeployment(configFlags, releaseCtx, values)
	if err != nil {
		return nil, err
	}

	tf := NewTaskFlow()
	tf.NewDeployReleaseFlow(deployment)

	return tf.TaskFlow, nil
}

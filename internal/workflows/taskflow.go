package workflows

import (
	"fmt"

	flow "github.com/noneback/go-taskflow"
	helmchart "helm.sh/helm/v3/pkg/chart"

	"github.com/mernstack/mernctl/pkg/helm"
)

// TaskFlow wraps go-taskflow's TaskFlow with custom methods
type TaskFlow struct {
	*flow.TaskFlow
}

// NewTaskFlow creates a new custom TaskFlow
func NewTaskFlow() *TaskFlow {
	return &TaskFlow{
		TaskFlow: flow.NewTaskFlow("deploy"),
	}
}

// ReleaseDeployment carries everything needed to deploy one release: the
// Helm client, the in-memory chart built from the rendered manifests, the
// release configuration and the rendered manifest used for diffing.
type ReleaseDeployment struct {
	Client   *helm.Client
	Chart    *helmchart.Chart
	Release  *helm.ReleaseConfig
	Manifest string
}

// NewDeployReleaseFlow creates a subflow for deploying a release. The
// condition routes to install for new releases and upgrade for existing ones.
func (tf *TaskFlow) NewDeployReleaseFlow(deployment *ReleaseDeployment) *flow.Task {
	return tf.NewSubflow(fmt.Sprintf("deploy-release-%s", deployment.Release.Name), func(sf *flow.Subflow) {
		cond := CheckReleaseExistsCondition(sf, deployment)
		cond.Precede(
			InstallReleaseTask(sf, deployment),
			UpgradeReleaseTask(sf, deployment),
		)
	})
}

package cli

import (
	"github.com/charmbracelet/log"
	flow "github.com/noneback/go-taskflow"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/mernctl"
	"github.com/mernstack/mernctl/internal/render"
	"github.com/mernstack/mernctl/internal/workflows"
	"github.com/mernstack/mernctl/pkg/manifests"
)

// NewDeployCommand creates and returns the deploy command
func NewDeployCommand(configFlags *genericclioptions.ConfigFlags) *cobra.Command {
	var (
		releaseName string
		direct      bool
	)

	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the stack to Kubernetes",
		Long: `Deploy resolves the configuration, renders the stack's manifests and
installs or upgrades the release on the cluster. With --direct the manifests
are applied to the cluster without Helm release tracking.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := loadValues()
			if err != nil {
				return err
			}

			namespace := resolveNamespace(configFlags)
			releaseCtx := newReleaseContext(releaseName, namespace, values)

			kubeVersion, err := detectKubeVersion(configFlags)
			if err != nil {
				log.Warn("Could not detect cluster version, assuming latest API shapes", "error", err)
			} else {
				releaseCtx.KubeVersion = kubeVersion
			}

			ctx := mernctl.New(cmd.Context(), configFlags, values)

			if direct {
				return deployDirect(ctx, releaseCtx)
			}

			tf, err := workflows.CreateDeployWorkflow(configFlags, releaseCtx, values)
			if err != nil {
				return err
			}

			executor := flow.NewExecutor(10)
			executor.Run(tf).Wait()

			log.Info("Deployment completed", "release", releaseCtx.ReleaseName, "namespace", namespace)
			return nil
		},
	}

	deployCmd.Flags().StringVar(&releaseName, "release", defaultReleaseName,
		"Release name used to derive resource names")
	deployCmd.Flags().BoolVar(&direct, "direct", false,
		"Apply manifests directly without Helm release tracking")

	return deployCmd
}

// deployDirect applies the rendered manifests straight to the cluster
func deployDirect(ctx mernctl.Context, releaseCtx chart.ReleaseContext) error {
	values, err := ctx.Values()
	if err != nil {
		return err
	}

	flags, err := ctx.ConfigFlags()
	if err != nil {
		return err
	}

	manifest, err := render.New(releaseCtx, values).Manifest()
	if err != nil {
		return err
	}

	client, err := manifests.NewClient(flags, releaseCtx.Namespace)
	if err != nil {
		return err
	}

	return client.Apply(ctx, manifest, &manifests.ApplyConfig{
		Namespace:       releaseCtx.Namespace,
		CreateNamespace: true,
	})
}

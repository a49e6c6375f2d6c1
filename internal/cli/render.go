package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/version"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/mernstack/mernctl/internal/render"
)

// NewRenderCommand creates and returns the render command
func NewRenderCommand(configFlags *genericclioptions.ConfigFlags) *cobra.Command {
	var (
		releaseName string
		kubeVersion string
	)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the stack's manifests",
		Long: `Render resolves the configuration and prints the full multi-document
manifest to stdout without touching the cluster.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := loadValues()
			if err != nil {
				return err
			}

			releaseCtx := newReleaseContext(releaseName, resolveNamespace(configFlags), values)

			if kubeVersion != "" {
				v, err := version.ParseGeneric(kubeVersion)
				if err != nil {
					return fmt.Errorf("invalid --kube-version %q: %w", kubeVersion, err)
				}
				releaseCtx.KubeVersion = v
			}

			manifest, err := render.New(releaseCtx, values).Manifest()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), manifest)
			return nil
		},
	}

	renderCmd.Flags().StringVar(&releaseName, "release", defaultReleaseName,
		"Release name used to derive resource names")
	renderCmd.Flags().StringVar(&kubeVersion, "kube-version", "",
		"Target cluster version for API capability gating (default: latest shapes)")

	return renderCmd
}

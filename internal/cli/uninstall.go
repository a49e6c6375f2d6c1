package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/mernstack/mernctl/pkg/helm"
)

// NewUninstallCommand creates and returns the uninstall command
func NewUninstallCommand(configFlags *genericclioptions.ConfigFlags) *cobra.Command {
	var releaseName string

	uninstallCmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Uninstall the stack's release",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := helm.NewClient(configFlags, resolveNamespace(configFlags))
			if err != nil {
				return err
			}

			exists, err := client.ReleaseExists(releaseName)
			if err != nil {
				return err
			}
			if !exists {
				log.Warn("Release not found, nothing to uninstall", "name", releaseName)
				return nil
			}

			return client.UninstallRelease(releaseName)
		},
	}

	uninstallCmd.Flags().StringVar(&releaseName, "release", defaultReleaseName,
		"Release name to uninstall")

	return uninstallCmd
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"
)

var (
	configFlags = genericclioptions.NewConfigFlags(true)

	valuesFiles []string
	setValues   []string
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mernctl",
		Short: "MERN microservices CLI",
		Long:  `mernctl renders and deploys the mern-microservices stack to Kubernetes.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := cmd.Help(); err != nil {
				fmt.Fprintf(os.Stderr, "Error showing help: %v\n", err)
			}
		},
	}

	configFlags.AddFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringSliceVarP(&valuesFiles, "values", "f", nil,
		"Values files to merge over the defaults; later files override earlier ones")
	rootCmd.PersistentFlags().StringArrayVar(&setValues, "set", nil,
		"Set individual values on the command line (key.path=value)")

	rootCmd.AddCommand(NewRenderCommand(configFlags))
	rootCmd.AddCommand(NewDeployCommand(configFlags))
	rootCmd.AddCommand(NewUninstallCommand(configFlags))
	rootCmd.AddCommand(NewGetCommand(configFlags))
	rootCmd.AddCommand(NewPipelineCommand())

	return rootCmd
}

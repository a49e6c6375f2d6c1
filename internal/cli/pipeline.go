package cli

import (
	"context"

	"github.com/charmbracelet/log"
	flow "github.com/noneback/go-taskflow"
	"github.com/spf13/cobra"

	"github.com/mernstack/mernctl/internal/pipeline"
	"github.com/mernstack/mernctl/internal/workflows"
)

// NewPipelineCommand creates and returns the pipeline command
func NewPipelineCommand() *cobra.Command {
	var (
		environment string
		registry    string
		tag         string
		deploy      bool
		releaseName string
		topicARN    string
		region      string
	)

	pipelineCmd := &cobra.Command{
		Use:   "pipeline [target]",
		Short: "Build, push and optionally deploy the stack's images",
		Long: `Pipeline builds and pushes the images for one service or all of them,
then optionally deploys the stack. The outcome is published to an SNS topic
when one is configured, and logged otherwise.

Targets: frontend, hello-service, profile-service, build-all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := pipeline.ParseTarget(args[0])
			if err != nil {
				return err
			}

			env, err := pipeline.ParseEnvironment(environment)
			if err != nil {
				return err
			}

			var notifier pipeline.Notifier = pipeline.LogNotifier{}
			if topicARN != "" {
				notifier, err = pipeline.NewSNSNotifier(region, topicARN)
				if err != nil {
					return err
				}
			}

			p := pipeline.New(pipeline.Options{
				Target:      target,
				Environment: env,
				Registry:    registry,
				Tag:         tag,
				Deploy:      deploy,
			}, notifier, deployStack(releaseName))

			return p.Run(cmd.Context())
		},
	}

	pipelineCmd.Flags().StringVar(&environment, "environment", string(pipeline.EnvDevelopment),
		"Deployment environment (development, staging, production)")
	pipelineCmd.Flags().StringVar(&registry, "registry", "docker.io/mernstack",
		"Image registry to tag and push to")
	pipelineCmd.Flags().StringVar(&tag, "tag", "latest",
		"Image tag, typically the build number or git revision")
	pipelineCmd.Flags().BoolVar(&deploy, "deploy", false,
		"Deploy the stack after all images are pushed")
	pipelineCmd.Flags().StringVar(&releaseName, "release", defaultReleaseName,
		"Release name used when deploying")
	pipelineCmd.Flags().StringVar(&topicARN, "topic-arn", "",
		"SNS topic to publish the pipeline outcome to")
	pipelineCmd.Flags().StringVar(&region, "region", pipeline.DefaultRegion,
		"AWS region of the notification topic")

	return pipelineCmd
}

// deployStack returns the pipeline's deploy step, reusing the deploy
// command's workflow
func deployStack(releaseName string) pipeline.DeployFunc {
	return func(ctx context.Context) error {
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

		tf, err := workflows.CreateDeployWorkflow(configFlags, releaseCtx, values)
		if err != nil {
			return err
		}

		executor := flow.NewExecutor(10)
		executor.Run(tf).Wait()

		log.Info("Deployment completed", "release", releaseCtx.ReleaseName, "namespace", namespace)
		return nil
	}
}

package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"

	"github.com/mernstack/mernctl/internal/config"
)

// Target selects which services a pipeline run builds.
type Target string

const (
	TargetFrontend       Target = config.ComponentFrontend
	TargetHelloService   Target = config.ComponentHelloService
	TargetProfileService Target = config.ComponentProfileService
	TargetBuildAll       Target = "build-all"
)

// ParseTarget validates a target selector. Unknown selectors fail the whole
// run before anything is built.
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetFrontend, TargetHelloService, TargetProfileService, TargetBuildAll:
		return Target(s), nil
	}
	return "", fmt.Errorf("unknown build target %q, must be one of: %s, %s, %s, %s",
		s, TargetFrontend, TargetHelloService, TargetProfileService, TargetBuildAll)
}

// Components expands the target into the component ids to build.
func (t Target) Components() []string {
	if t == TargetBuildAll {
		return []string{
			config.ComponentHelloService,
			config.ComponentProfileService,
			config.ComponentFrontend,
		}
	}
	return []string{string(t)}
}

// Environment is the deployment environment a pipeline run targets.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// ParseEnvironment validates an environment name.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return Environment(s), nil
	}
	return "", fmt.Errorf("unknown environment %q, must be one of: %s, %s, %s",
		s, EnvDevelopment, EnvStaging, EnvProduction)
}

// CommandRunner runs one external command. It exists so tests can record
// commands instead of spawning docker.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Options parameterizes one pipeline run.
type Options struct {
	Target      Target
	Environment Environment

	// Registry is the image registry images are tagged for and pushed to.
	Registry string

	// Tag is the image tag, typically the build number or git revision.
	Tag string

	// Deploy runs the deployment step after all images are pushed.
	Deploy bool
}

// DeployFunc deploys the stack after a successful build.
type DeployFunc func(ctx context.Context) error

// Pipeline builds and pushes the stack's images and optionally deploys,
// reporting the outcome through its notifier.
type Pipeline struct {
	opts     Options
	runner   CommandRunner
	notifier Notifier
	deploy   DeployFunc
}

// New creates a Pipeline with the default command runner.
func New(opts Options, notifier Notifier, deploy DeployFunc) *Pipeline {
	return &Pipeline{
		opts:     opts,
		runner:   execRunner{},
		notifier: notifier,
		deploy:   deploy,
	}
}

// imageRef assembles the image reference for a component.
func (p *Pipeline) imageRef(component string) string {
	return fmt.Sprintf("%s/%s:%s", p.opts.Registry, component, p.opts.Tag)
}

// Run executes the pipeline: build and push each selected component's image,
// then deploy when requested. The first failure aborts the run; no partial
// rollback is attempted. The outcome is published through the notifier either
// way.
func (p *Pipeline) Run(ctx context.Context) error {
	err := p.run(ctx)

	subject := "mernctl deployment status"
	if err != nil {
		message := fmt.Sprintf("Build failed for %s (%s): %v", p.opts.Target, p.opts.Environment, err)
		if notifyErr := p.notifier.Notify(ctx, subject, message); notifyErr != nil {
			log.Error("Failed to send failure notification", "error", notifyErr)
		}
		return err
	}

	message := fmt.Sprintf("Build completed successfully for %s (%s)", p.opts.Target, p.opts.Environment)
	if notifyErr := p.notifier.Notify(ctx, subject, message); notifyErr != nil {
		log.Error("Failed to send success notification", "error", notifyErr)
	}
	return nil
}

func (p *Pipeline) run(ctx context.Context) error {
	for _, component := range p.opts.Target.Components() {
		image := p.imageRef(component)

		log.Info("Building image", "component", component, "image", image)
		if err := p.runner.Run(ctx, "docker", "build", "-t", image, "./"+component); err != nil {
			return fmt.Errorf("failed to build %s: %w", component, err)
		}

		log.Info("Pushing image", "component", component, "image", image)
		if err := p.runner.Run(ctx, "docker", "push", image); err != nil {
			return fmt.Errorf("failed to push %s: %w", component, err)
		}
	}

	if !p.opts.Deploy {
		return nil
	}

	if p.deploy == nil {
		return fmt.Errorf("deploy requested but no deploy step configured")
	}

	log.Info("Deploying stack", "environment", p.opts.Environment)
	if err := p.deploy(ctx); err != nil {
		return fmt.Errorf("failed to deploy: %w", err)
	}

	return nil
}

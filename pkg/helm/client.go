package helm

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/release"
	"k8s.io/cli-runtime/pkg/genericclioptions"
)

// Client provides a Helm client for interacting with a Kubernetes cluster
type Client struct {
	getter       genericclioptions.RESTClientGetter
	Namespace    string
	actionConfig *action.Configuration
}

// NewClient creates a new Helm client
func NewClient(getter genericclioptions.RESTClientGetter, namespace string) (*Client, error) {
	actionConfig := new(action.Configuration)

	if err := actionConfig.Init(getter, namespace, os.Getenv("HELM_DRIVER"), func(format string, args ...interface{}) {
		log.With("namespace", namespace).Debugf(format, args...)
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize action config: %w", err)
	}

	if err := actionConfig.KubeClient.IsReachable(); err != nil {
		return nil, fmt.Errorf("kubernetes cluster is not reachable: %w", err)
	}

	return &Client{
		getter:       getter,
		Namespace:    namespace,
		actionConfig: actionConfig,
	}, nil
}

// configureInstallAction creates and configures an install action
func (c *Client) configureInstallAction(config *ReleaseConfig) *action.Install {
	install := action.NewInstall(c.actionConfig)

	install.ReleaseName = config.Name
	install.Namespace = config.Namespace
	install.CreateNamespace = true

	install.Wait = true
	install.Timeout = 5 * time.Minute

	return install
}

// configureUpgradeAction creates and configures an upgrade action
func (c *Client) configureUpgradeAction(config *ReleaseConfig) *action.Upgrade {
	upgrade := action.NewUpgrade(c.actionConfig)

	upgrade.Install = true
	upgrade.Namespace = config.Namespace
	upgrade.ResetValues = true
	upgrade.Wait = true
	upgrade.Timeout = 5 * time.Minute

	return upgrade
}

// ReleaseExists checks if a release exists
func (c *Client) ReleaseExists(releaseName string) (bool, error) {
	history := action.NewHistory(c.actionConfig)
	history.Max = 1

	_, err := history.Run(releaseName)
	return err == nil, nil
}

// UninstallRelease removes a Helm release
func (c *Client) UninstallRelease(releaseName string) error {
	uninstall := action.NewUninstall(c.actionConfig)
	_, err := uninstall.Run(releaseName)
	if err != nil {
		return fmt.Errorf("failed to uninstall release %s: %w", releaseName, err)
	}

	log.Info("Successfully uninstalled release", "name", releaseName)
	return nil
}

// GetRelease retrieves a deployed release
func (c *Client) GetRelease(releaseName string) (*release.Release, error) {
	get := action.NewGet(c.actionConfig)
	return get.Run(releaseName)
}

// InstallRelease installs a chart as a new release
func (c *Client) InstallRelease(ch *chart.Chart, config *ReleaseConfig) (*release.Release, error) {
	install := c.configureInstallAction(config)
	return install.Run(ch, config.Values)
}

// UpgradeRelease upgrades an existing release to the given chart
func (c *Client) UpgradeRelease(ch *chart.Chart, config *ReleaseConfig) (*release.Release, error) {
	upgrade := c.configureUpgradeAction(config)
	return upgrade.Run(config.Name, ch, config.Values)
}

// HasDiff checks if the rendered manifest differs from the deployed release
func (c *Client) HasDiff(config *ReleaseConfig, manifest string) (bool, error) {
	// Check if release exists
	exists, err := c.ReleaseExists(config.Name)
	if err != nil {
		return false, err
	}

	// If release doesn't exist, there's always a diff (new installation)
	if !exists {
		return true, nil
	}

	// Get deployed release
	deployedRelease, err := c.GetRelease(config.Name)
	if err != nil {
		return false, fmt.Errorf("failed to get deployed release: %w", err)
	}

	// Helm reorders documents and rewrites their source headers when it
	// stores the manifest, so a raw string comparison never matches. Compare
	// the canonical document sets instead.
	return manifestsDiffer(deployedRelease.Manifest, manifest)
}

// DeployRelease installs or upgrades a release based on whether it exists.
// The manifest is the fully rendered output of the chart and is used to skip
// upgrades that would not change anything.
func (c *Client) DeployRelease(ch *chart.Chart, config *ReleaseConfig, manifest string) (*release.Release, error) {
	exists, err := c.ReleaseExists(config.Name)
	if err != nil {
		return nil, err
	}

	if exists {
		// Check if there are any changes
		hasDiff, err := c.HasDiff(config, manifest)
		if err != nil {
			return nil, fmt.Errorf("failed to check for differences: %w", err)
		}

		// If no differences, skip upgrade
		if !hasDiff {
			log.Info("No changes detected, skipping upgrade", "name", config.Name)
			// Get current release
			return c.GetRelease(config.Name)
		}

		return c.UpgradeRelease(ch, config)
	}

	return c.InstallRelease(ch, config)
}

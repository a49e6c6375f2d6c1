package workflows

import (
	"fmt"

	"github.com/charmbracelet/log"
	flow "github.com/noneback/go-taskflow"
)

func CheckReleaseExistsCondition(sf *flow.Subflow, deployment *ReleaseDeployment) *flow.Task {
	conditionName := fmt.Sprintf("check-release-exists-%s", deployment.Release.Name)

	return sf.NewCondition(conditionName, func() uint {
		exists, err := deployment.Client.ReleaseExists(deployment.Release.Name)
		if err != nil {
			log.Fatal("Failed to check if release exists", "error", err)
		}

		if !exists {
			return 0 // install
		}

		return 1 // upgrade
	})
}

func InstallReleaseTask(sf *flow.Subflow, deployment *ReleaseDeployment) *flow.Task {
	return sf.NewTask(fmt.Sprintf("install-release-%s", deployment.Release.Name), func() {
		log.Info("Installing release", "name", deployment.Release.Name)

		release, err := deployment.Client.InstallRelease(deployment.Chart, deployment.Release)
		if err != nil {
			log.Fatal("Install failed", "error", err)
		}

		log.Info("Successfully installed release", "name", release.Name, "version", release.Version)
	})
}

func UpgradeReleaseTask(sf *flow.Subflow, deployment *ReleaseDeployment) *flow.Task {
	return sf.NewTask(fmt.Sprintf("upgrade-release-%s", deployment.Release.Name), func() {
		hasDiff, err := deployment.Client.HasDiff(deployment.Release, deployment.Manifest)
		if err != nil {
			log.Fatal("Failed to check for differences", "error", err)
		}

		if !hasDiff {
			log.Info("No changes detected, skipping upgrade", "name", deployment.Release.Name)
			return
		}

		log.Info("Upgrading release", "name", deployment.Release.Name)

		release, err := deployment.Client.UpgradeRelease(deployment.Chart, deployment.Release)
		if err != nil {
			log.Fatal("Upgrade failed", "error", err)
		}

		log.Info("Successfully upgraded release", "name", release.Name, "version", release.Version)
	})
}

/*
Package main provides mernctl, a CLI tool for rendering and deploying the
mern-microservices stack to Kubernetes.

Usage:

	mernctl [command]

Available Commands:

	render      Render the stack's manifests to stdout
	deploy      Deploy the stack as a Helm release (or apply directly with --direct)
	uninstall   Uninstall the stack's release
	get         Display resolved configuration (e.g., services)
	pipeline    Build, push and optionally deploy the stack's images

Examples:

	# Render the full manifest with default values
	mernctl render

	# Deploy with a values file and an override
	mernctl deploy -f values-production.yaml --set mongodb.connectionString=mongodb://...

	# Show the resolved services
	mernctl get services

	# Build and push all images, then deploy
	mernctl pipeline build-all --deploy --environment production

Configuration is merged from built-in defaults, any --values files in order,
and --set overrides, with later sources winning per leaf key.
*/
package main

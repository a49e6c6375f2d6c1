package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/printers"
	"k8s.io/cli-runtime/pkg/resource"

	"github.com/mernstack/mernctl/internal/cli/resources"
)

// GetCmd handles the get command
type GetCmd struct {
	configFlags *genericclioptions.ConfigFlags
	registry    *resources.Registry

	// Command options
	releaseName  string
	outputFormat string
	noHeaders    bool
}

// NewGetCommand creates a new get command
func NewGetCommand(configFlags *genericclioptions.ConfigFlags) *cobra.Command {
	g := &GetCmd{
		configFlags: configFlags,
		registry:    resources.NewRegistry(),
	}

	// Register all resources
	g.registerResources()

	cmd := &cobra.Command{
		Use:   "get [resource] [component...]",
		Short: "Display one or many resolved resources",
		Long:  g.getLongDescription(),
		RunE:  g.run,
	}

	// Add flags
	cmd.Flags().StringVar(&g.releaseName, "release", defaultReleaseName, "Release name used to derive resource names")
	cmd.Flags().StringVarP(&g.outputFormat, "output", "o", "", "Output format. One of: (json, yaml)")
	cmd.Flags().BoolVar(&g.noHeaders, "no-headers", false, "When using the default output format, don't print headers")

	return cmd
}

// registerResources registers all available resources
func (g *GetCmd) registerResources() {
	g.registry.Register(&resources.ServiceResource{})
}

// getLongDescription builds the long description with available resources
func (g *GetCmd) getLongDescription() string {
	resourceList := strings.Join(g.registry.List(), ", ")

	return fmt.Sprintf(`Display one or many resolved resources.

Prints a table of the configuration as it would render, after defaults,
values files and --set overrides are merged.

Available resources: %s

Examples:
  # List all services with their resolved names and images
  mernctl get services

  # Get a specific service by component id (space-separated)
  mernctl get services hello-service

  # Get a specific service by component id (slash notation)
  mernctl get services/frontend

  # Get multiple services using comma-separated component ids
  mernctl get services/hello-service,profile-service

  # Output in JSON format
  mernctl get services -o json

  # Output in YAML format
  mernctl get services -o yaml`, resourceList)
}

// run executes the get command
func (g *GetCmd) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("you must specify the type of resource to get. Available resources: %s",
			strings.Join(g.registry.List(), ", "))
	}

	// Parse resource type and names (supporting both "resource name" and "resource/name" formats)
	resourceType, resourceNames, err := g.parseResourceArgs(args)
	if err != nil {
		return err
	}

	// Get the resource handler
	res, ok := g.registry.Get(resourceType)
	if !ok {
		return fmt.Errorf("unknown resource type: %s. Available resources: %s",
			resourceType, strings.Join(g.registry.List(), ", "))
	}

	// Resolve the configuration
	values, err := loadValues()
	if err != nil {
		return err
	}

	releaseCtx := newReleaseContext(g.releaseName, resolveNamespace(g.configFlags), values)

	// Resolve the resources
	data, err := res.List(releaseCtx, values, resourceNames)
	if err != nil {
		return err
	}

	// Output the results
	streams := genericclioptions.IOStreams{
		Out: os.Stdout,
	}

	switch g.outputFormat {
	case "json", "yaml":
		// Print as JSON/YAML
		return g.printObject(data, streams.Out, g.outputFormat)
	default:
		// Get the regular table representation
		table, err := res.GetTable(data)
		if err != nil {
			return err
		}
		return g.printTable(table, streams.Out)
	}
}

// printTable prints a table using the table printer
func (g *GetCmd) printTable(table *metav1.Table, out io.Writer) error {
	printer := printers.NewTablePrinter(printers.PrintOptions{
		NoHeaders: g.noHeaders,
	})

	return printer.PrintObj(table, out)
}

// parseResourceArgs parses command arguments supporting both "resource name" and "resource/name" formats
func (g *GetCmd) parseResourceArgs(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("no arguments provided")
	}

	firstArg := strings.ToLower(args[0])

	// Check if the first argument contains a slash (resource/name format)
	if strings.Contains(firstArg, "/") {
		// Handle resource/name format
		parts := strings.Split(firstArg, "/")
		if len(parts) != 2 {
			return "", nil, fmt.Errorf("arguments in resource/name form may not have more than one slash")
		}

		resourceType := parts[0]
		resourceName := parts[1]

		if len(resourceType) == 0 || len(resourceName) == 0 {
			return "", nil, fmt.Errorf("arguments in resource/name form must have a single resource and name")
		}

		// Check if there are additional arguments (which would be an error)
		if len(args) > 1 {
			return "", nil, fmt.Errorf("there is no need to specify additional arguments when using resource/name form")
		}

		// Use Kubernetes' SplitResourceArgument to handle comma-separated names
		names := resource.SplitResourceArgument(resourceName)
		return resourceType, names, nil
	}

	// Handle space-separated format (resource name1 name2 ...)
	resourceType := firstArg
	var resourceNames []string

	if len(args) > 1 {
		// Process all remaining arguments as resource names, supporting comma-separation
		for _, arg := range args[1:] {
			// Use Kubernetes' SplitResourceArgument for consistency
			names := resource.SplitResourceArgument(arg)
			resourceNames = append(resourceNames, names...)
		}
	}

	return resourceType, resourceNames, nil
}

// printObject prints data in JSON or YAML format
func (g *GetCmd) printObject(obj runtime.Object, out io.Writer, format string) error {
	var printer printers.ResourcePrinter
	switch format {
	case "json":
		printer = &printers.JSONPrinter{}
	case "yaml":
		printer = &printers.YAMLPrinter{}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	return printer.PrintObj(obj, out)
}

package resources

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/config"
)

// Resource defines the interface for a resource that can be resolved from the
// stack's configuration
type Resource interface {
	// Name returns the resource name (e.g., "services")
	Name() string

	// Aliases returns alternative names for the resource (e.g., ["service"] for "services")
	Aliases() []string

	// List resolves resources and returns them as a runtime.Object list
	List(releaseCtx chart.ReleaseContext, values *config.Values, names []string) (runtime.Object, error)

	// GetTable converts a runtime.Object list to a table representation
	GetTable(obj runtime.Object) (*metav1.Table, error)
}

// Registry holds all registered resources
type Registry struct {
	resources map[string]Resource
}

// NewRegistry creates a new resource registry
func NewRegistry() *Registry {
	return &Registry{
		resources: make(map[string]Resource),
	}
}

// Register adds a resource to the registry
func (r *Registry) Register(resource Resource) {
	r.resources[resource.Name()] = resource

	// Also register aliases
	for _, alias := range resource.Aliases() {
		r.resources[alias] = resource
	}
}

// Get retrieves a resource by name
func (r *Registry) Get(name string) (Resource, bool) {
	resource, ok := r.resources[name]
	return resource, ok
}

// List returns all registered resources
func (r *Registry) List() []string {
	seen := make(map[Resource]bool)
	var names []string

	for name, resource := range r.resources {
		if !seen[resource] && name == resource.Name() {
			names = append(names, name)
			seen[resource] = true
		}
	}

	return names
}

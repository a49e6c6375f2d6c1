package resources

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/config"
)

// ServiceResource handles the stack's resolved services
type ServiceResource struct{}

// Name returns the resource name
func (r *ServiceResource) Name() string {
	return "services"
}

// Aliases returns alternative names for the resource
func (r *ServiceResource) Aliases() []string {
	return []string{"service", "svc"}
}

// List resolves the stack's services and returns them as a runtime.Object
func (r *ServiceResource) List(releaseCtx chart.ReleaseContext, values *config.Values, names []string) (runtime.Object, error) {
	// Filter by component id if specified
	filter := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := values.ServiceByComponent(name); err != nil {
			return nil, err
		}
		filter[name] = true
	}

	infos := make([]ServiceInfo, 0, 3)
	for _, ref := range values.Services() {
		if len(filter) > 0 && !filter[ref.Component] {
			continue
		}

		infos = append(infos, ServiceInfo{
			Component:  ref.Component,
			Name:       chart.ServiceFullname(releaseCtx, ref.Service.Name, ref.Service.FullnameOverride),
			Enabled:    ref.Service.IsEnabled(),
			Replicas:   ref.Service.ReplicaCount,
			Image:      values.ImageRef(ref.Service),
			PullPolicy: values.PullPolicy(ref.Service),
			Port:       ref.Service.Service.Port,
			TargetPort: ref.Service.Service.TargetPort,
			Database:   values.DatabaseEnabled(ref.Service),
		})
	}

	return &ServiceInfoList{
		TypeMeta: metav1.TypeMeta{
			Kind:       "ServiceInfoList",
			APIVersion: "mernctl.dev/v1",
		},
		Items: infos,
	}, nil
}

// GetTable converts a runtime.Object list to a table representation
func (r *ServiceResource) GetTable(obj runtime.Object) (*metav1.Table, error) {
	serviceList, ok := obj.(*ServiceInfoList)
	if !ok {
		return nil, fmt.Errorf("expected ServiceInfoList, got %T", obj)
	}

	columns := []metav1.TableColumnDefinition{
		{Name: "COMPONENT", Type: "string", Description: "Stable component id"},
		{Name: "NAME", Type: "string", Description: "Resolved resource name"},
		{Name: "ENABLED", Type: "string", Description: "Whether the service renders"},
		{Name: "REPLICAS", Type: "integer", Description: "Desired replica count"},
		{Name: "IMAGE", Type: "string", Description: "Resolved image reference"},
		{Name: "PORT", Type: "string", Description: "Service port -> container port"},
		{Name: "DATABASE", Type: "string", Description: "Whether the MongoDB connection is injected"},
	}

	rows := []metav1.TableRow{}
	for _, info := range serviceList.Items {
		enabled := "true"
		if !info.Enabled {
			enabled = "false"
		}

		database := "false"
		if info.Database {
			database = "true"
		}

		row := metav1.TableRow{
			Cells: []interface{}{
				info.Component,
				info.Name,
				enabled,
				info.Replicas,
				info.Image,
				fmt.Sprintf("%d->%d", info.Port, info.TargetPort),
				database,
			},
		}
		rows = append(rows, row)
	}

	return &metav1.Table{
		TypeMeta: metav1.TypeMeta{
			Kind:       "Table",
			APIVersion: "meta.k8s.io/v1",
		},
		ColumnDefinitions: columns,
		Rows:              rows,
	}, nil
}

package resources

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// ServiceInfo is one service of the stack with its names and leaves resolved
type ServiceInfo struct {
	// Component is the stable component id (hello-service, profile-service, frontend)
	Component string `json:"component"`

	// Name is the resolved resource name, after overrides and truncation
	Name string `json:"name"`

	Enabled    bool   `json:"enabled"`
	Replicas   int32  `json:"replicas"`
	Image      string `json:"image"`
	PullPolicy string `json:"pullPolicy"`
	Port       int32  `json:"port"`
	TargetPort int32  `json:"targetPort"`
	Database   bool   `json:"database"`
}

// ServiceInfoList represents the resolved services of the stack
type ServiceInfoList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ServiceInfo `json:"items"`
}

// GetObjectKind returns the object kind
func (s *ServiceInfoList) GetObjectKind() schema.ObjectKind {
	return &s.TypeMeta
}

// DeepCopyObject creates a deep copy of the ServiceInfoList
func (s *ServiceInfoList) DeepCopyObject() runtime.Object {
	return &ServiceInfoList{
		TypeMeta: s.TypeMeta,
		ListMeta: s.ListMeta,
		Items:    append([]ServiceInfo(nil), s.Items...),
	}
}

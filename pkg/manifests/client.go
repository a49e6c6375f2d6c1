package manifests

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/runtime/serializer/yaml"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/restmapper"
)

// NewClient creates a new client for applying Kubernetes manifests
func NewClient(getter genericclioptions.RESTClientGetter, namespace string) (*Client, error) {
	config, err := getter.ToRESTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get Kubernetes config: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	discovery, err := getter.ToDiscoveryClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	apiGroups, err := restmapper.GetAPIGroupResources(discovery)
	if err != nil {
		return nil, fmt.Errorf("failed to get API group resources: %w", err)
	}

	return &Client{
		dynamicClient: dynamicClient,
		restMapper:    restmapper.NewDiscoveryRESTMapper(apiGroups),
		namespace:     namespace,
	}, nil
}

// Apply applies a rendered multi-document manifest to the cluster
func (c *Client) Apply(ctx context.Context, manifest string, config *ApplyConfig) error {
	// Set a default namespace if none is specified
	namespace := "default"
	if config.Namespace != "" {
		namespace = config.Namespace
	} else if c.namespace != "" {
		namespace = c.namespace
	}

	log.Info("Applying manifests", "namespace", namespace)

	if config.CreateNamespace {
		if err := c.EnsureNamespaceExists(ctx, namespace); err != nil {
			return err
		}
	}

	return c.applyManifestContent(ctx, []byte(manifest), namespace)
}

// EnsureNamespaceExists ensures that the specified namespace exists
func (c *Client) EnsureNamespaceExists(ctx context.Context, namespace string) error {
	return c.createNamespaceIfNotExists(ctx, namespace)
}

// createNamespaceIfNotExists creates a namespace if it doesn't already exist
func (c *Client) createNamespaceIfNotExists(ctx context.Context, namespace string) error {
	// Create a direct API call to create the namespace
	nsObj := &unstructured.Unstructured{}
	nsObj.SetAPIVersion("v1")
	nsObj.SetKind("Namespace")
	nsObj.SetName(namespace)

	// Get the API resource for namespace
	mapping, err := c.restMapper.RESTMapping(schema.GroupKind{Group: "", Kind: "Namespace"}, "v1")
	if err != nil {
		return fmt.Errorf("failed to get REST mapping for Namespace: %w", err)
	}

	// Get the dynamic resource interface for namespaces (which are cluster-scoped)
	dr := c.dynamicClient.Resource(mapping.Resource)

	// Check if namespace exists
	_, err = dr.Get(ctx, namespace, metav1.GetOptions{})
	if err == nil {
		// Namespace already exists
		log.Debug("Namespace already exists", "name", namespace)
		return nil
	}

	log.Info("Creating namespace", "name", namespace)

	// Create the namespace
	result, err := dr.Create(ctx, nsObj, metav1.CreateOptions{})
	if err != nil {
		return fmt.Errorf("failed to create namespace %s: %w", namespace, err)
	}

	log.Info("Created namespace", "name", result.GetName())

	// Give the Kubernetes API server a moment to process the namespace creation
	// This helps prevent race conditions where resources are created before the namespace is fully ready
	time.Sleep(2 * time.Second)

	// Verify namespace exists after creation
	_, verifyErr := dr.Get(ctx, namespace, metav1.GetOptions{})
	if verifyErr != nil {
		return fmt.Errorf("namespace %s was not created properly: %w", namespace, verifyErr)
	}

	return nil
}

// applyManifestContent applies the given manifest content
func (c *Client) applyManifestContent(ctx context.Context, content []byte, defaultNamespace string) error {
	decoder := yaml.NewDecodingSerializer(unstructured.UnstructuredJSONScheme)

	// Split the YAML documents
	parts := bytes.Split(content, []byte("---\n"))

	for _, part := range parts {
		// Skip empty parts
		if len(bytes.TrimSpace(part)) == 0 {
			continue
		}

		obj := &unstructured.Unstructured{}
		_, gvk, err := decoder.Decode(part, nil, obj)
		if err != nil {
			log.Warn("Failed to decode manifest", "error", err)
			continue
		}

		// Set namespace if not specified and not a cluster-scoped resource
		if defaultNamespace != "" {
			if obj.GetNamespace() == "" {
				// Check if this resource type supports namespaces
				mapping, err := c.restMapper.RESTMapping(gvk.GroupKind(), gvk.Version)
				if err != nil {
					return fmt.Errorf("failed to get REST mapping: %w", err)
				}

				if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
					obj.SetNamespace(defaultNamespace)
				}
			}
		}

		// Get the API resource for this GVK
		mapping, err := c.restMapper.RESTMapping(gvk.GroupKind(), gvk.Version)
		if err != nil {
			return fmt.Errorf("failed to get REST mapping for %s: %w", gvk.String(), err)
		}

		// Get the dynamic resource interface
		var dr dynamic.ResourceInterface
		if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
			dr = c.dynamicClient.Resource(mapping.Resource).Namespace(obj.GetNamespace())
		} else {
			dr = c.dynamicClient.Resource(mapping.Resource)
		}

		// Try to get the existing resource
		name := obj.GetName()
		existingObj, err := dr.Get(ctx, name, metav1.GetOptions{})
		if err == nil {
			// Resource exists, update it
			// Set the resourceVersion to ensure we're updating the latest version
			obj.SetResourceVersion(existingObj.GetResourceVersion())
			result, err := dr.Update(ctx, obj, metav1.UpdateOptions{})
			if err != nil {
				return fmt.Errorf("failed to update resource %s/%s: %w", gvk.Kind, name, err)
			}
			log.Info("Updated resource",
				"kind", gvk.Kind,
				"name", result.GetName(),
				"namespace", result.GetNamespace(),
			)
		} else {
			// Resource doesn't exist, create it
			result, err := dr.Create(ctx, obj, metav1.CreateOptions{})
			if err != nil {
				return fmt.Errorf("failed to create resource %s/%s: %w", gvk.Kind, name, err)
			}
			log.Info("Created resource",
				"kind", gvk.Kind,
				"name", result.GetName(),
				"namespace", result.GetNamespace(),
			)
		}
	}

	return nil
}

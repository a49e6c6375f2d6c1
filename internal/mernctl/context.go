package mernctl

import (
	"context"
	"errors"

	"github.com/mernstack/mernctl/internal/config"
	"k8s.io/cli-runtime/pkg/genericclioptions"
)

// contextKey is an unexported type for context keys to prevent collisions
type contextKey int

// Context key constants using iota for better performance and type safety
const (
	configFlagsKey contextKey = iota
	valuesKey
)

var (
	// ErrNoConfigFlags is returned when config flags are not found in context
	ErrNoConfigFlags = errors.New("kubernetes config flags not found in context")
	// ErrNoValues is returned when resolved values are not found in context
	ErrNoValues = errors.New("resolved configuration values not found in context")
)

// Context wraps the standard context with mernctl-specific values
type Context struct {
	context.Context
}

// New creates a new mernctl context with the given configuration
func New(parent context.Context, configFlags *genericclioptions.ConfigFlags, values *config.Values) Context {
	ctx := context.WithValue(parent, configFlagsKey, configFlags)
	ctx = context.WithValue(ctx, valuesKey, values)
	return Context{ctx}
}

// WithConfigFlags returns a new context with the config flags set
func WithConfigFlags(parent context.Context, configFlags *genericclioptions.ConfigFlags) context.Context {
	return context.WithValue(parent, configFlagsKey, configFlags)
}

// WithValues returns a new context with the resolved values set
func WithValues(parent context.Context, values *config.Values) context.Context {
	return context.WithValue(parent, valuesKey, values)
}

// ConfigFlags returns the Kubernetes config flags from the context
func ConfigFlags(ctx context.Context) (*genericclioptions.ConfigFlags, error) {
	v := ctx.Value(configFlagsKey)
	if v == nil {
		return nil, ErrNoConfigFlags
	}
	flags, ok := v.(*genericclioptions.ConfigFlags)
	if !ok {
		return nil, ErrNoConfigFlags
	}
	return flags, nil
}

// MustConfigFlags returns the config flags or panics if not found
func MustConfigFlags(ctx context.Context) *genericclioptions.ConfigFlags {
	flags, err := ConfigFlags(ctx)
	if err != nil {
		panic(err)
	}
	return flags
}

// Values returns the resolved configuration values from the context
func Values(ctx context.Context) (*config.Values, error) {
	v := ctx.Value(valuesKey)
	if v == nil {
		return nil, ErrNoValues
	}
	values, ok := v.(*config.Values)
	if !ok {
		return nil, ErrNoValues
	}
	return values, nil
}

// MustValues returns the resolved values or panics if not found
func MustValues(ctx context.Context) *config.Values {
	values, err := Values(ctx)
	if err != nil {
		panic(err)
	}
	return values
}

// Convenience method on the wrapped context
func (c Context) ConfigFlags() (*genericclioptions.ConfigFlags, error) {
	return ConfigFlags(c.Context)
}

// Convenience method on the wrapped context
func (c Context) Values() (*config.Values, error) {
	return Values(c.Context)
}

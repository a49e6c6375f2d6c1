package mernctl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/mernstack/mernctl/internal/config"
)

func TestContextCarriesConfigFlagsAndValues(t *testing.T) {
	flags := genericclioptions.NewConfigFlags(true)
	values := config.Defaults()

	ctx := New(context.Background(), flags, values)

	gotFlags, err := ctx.ConfigFlags()
	require.NoError(t, err)
	assert.Same(t, flags, gotFlags)

	gotValues, err := ctx.Values()
	require.NoError(t, err)
	assert.Same(t, values, gotValues)
}

func TestContextMissingValues(t *testing.T) {
	_, err := ConfigFlags(context.Background())
	assert.ErrorIs(t, err, ErrNoConfigFlags)

	_, err = Values(context.Background())
	assert.ErrorIs(t, err, ErrNoValues)
}

func TestMustConfigFlagsPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustConfigFlags(context.Background())
	})
}

package loader_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowe/lintel/pkg/loader"
)

// Only the argument validation is unit-tested; everything past it invokes
// the go/packages driver, which needs a real module on disk. Runner tests
// cover the downstream behavior with synthetic packages.
func TestLoadRejectsUnknownMode(t *testing.T) {
	_, err := loader.Load(context.Background(), []string{"./..."}, loader.LoadMode(99), loader.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown load mode")
}

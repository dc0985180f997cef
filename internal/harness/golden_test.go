package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGolden_Tiny(t *testing.T) {
	result, err := RunWithGolden(t, mustLoad(t, "tiny"))
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestGolden_Commutative(t *testing.T) {
	result, err := RunWithGolden(t, mustLoad(t, "commutative"))
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)
}

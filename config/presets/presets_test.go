package presets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	require.Equal(t, []string{"checked", "standard", "tight"}, Options())
	for _, name := range Options() {
		conf, err := Get(name)
		require.NoError(t, err)
		require.NoError(t, conf.Validate(), name)
	}

	conf, err := Get("tight")
	require.NoError(t, err)
	require.EqualValues(t, 64<<10, conf.Sketch.Mem)

	_, err = Get("mainnet")
	require.ErrorContains(t, err, "preset mainnet is not registered")
	require.Panics(t, func() { register("tight", tight()) })
}

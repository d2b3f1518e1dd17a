package carbon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFactors(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "factors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
hardware:
  - id: gpu_t4
    tdp_watts: 70
    accelerator: true
`), 0o644))
	return path
}

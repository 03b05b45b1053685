package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vc "github.com/LynnColeArt/visioncore"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("640x480")
	require.NoError(t, err)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	w, h, err = parseSize("32X8")
	require.NoError(t, err)
	assert.Equal(t, []int{32, 8}, []int{w, h})

	for _, bad := range []string{"640", "ax480", "640xb", "0x10", "-4x4"} {
		_, _, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestVerifyCommand(t *testing.T) {
	out, err := execute(t, "verify", "--seed", "7")
	require.NoError(t, err, out)
	assert.Contains(t, out, "all checks passed")
	assert.Contains(t, out, "flip-x")
	assert.NotContains(t, out, "FAIL")
}

func TestInfoCommand(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "vc.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("device:\n  workers: 2\n  pitch_alignment: 128\n"), 0644))

	out, err := execute(t, "info", "--config", cfg, "--log-level", "warn")
	t.Cleanup(func() { cfgFile = "" })
	require.NoError(t, err)
	assert.Contains(t, out, "Workers:          2")
	assert.Contains(t, out, "Pitch alignment:  128 bytes")
	assert.Equal(t, 2, vc.DefaultContext().Workers().NumWorkers())
}

func TestInfoCommandBadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "vc.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("device:\n  pitch_alignment: 3\n"), 0644))

	_, err := execute(t, "info", "--config", cfg)
	t.Cleanup(func() { cfgFile = "" })
	assert.ErrorIs(t, err, vc.ErrInvalidConfig)
}

func TestBenchAndSummary(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "bench", "--sizes", "16x8", "-n", "2", "--log-dir", dir, "--kernels", "fill,flip-x")
	t.Cleanup(func() { benchKernels = nil })
	require.NoError(t, err, out)
	assert.Contains(t, out, "Total: 4 | Passed: 4 | Failed: 0")
	assert.Contains(t, out, "fill/device/16x8")

	files, err := filepath.Glob(filepath.Join(dir, "vcbench_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	out, err = execute(t, "bench", "summary", files[0])
	require.NoError(t, err)
	assert.Contains(t, out, "flip-x/host/16x8")
	assert.Contains(t, out, "Passed: 4")
}

func TestBenchRejectsBadSize(t *testing.T) {
	_, err := execute(t, "bench", "--sizes", "16by8", "--log-dir", "")
	t.Cleanup(func() { benchSizes = []string{"640x480", "1920x1080"} })
	assert.Error(t, err)
}

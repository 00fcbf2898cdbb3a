package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitEnv_WorkdirWinsOverRuntime(t *testing.T) {
	workdir := t.TempDir()
	runtime := t.TempDir()
	t.Chdir(workdir)
	t.Setenv("TGSEARCH_RUNTIME_PATH", runtime)

	require.NoError(t, os.WriteFile(filepath.Join(workdir, ".env"),
		[]byte("TGSEARCH_TEST_A=workdir\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(runtime, ".env"),
		[]byte("TGSEARCH_TEST_A=runtime\nTGSEARCH_TEST_B=runtime\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("TGSEARCH_TEST_A")
		_ = os.Unsetenv("TGSEARCH_TEST_B")
	})

	require.NoError(t, initEnv(context.Background()))
	assert.Equal(t, "workdir", os.Getenv("TGSEARCH_TEST_A"))
	assert.Equal(t, "runtime", os.Getenv("TGSEARCH_TEST_B"))
}

func TestInitEnv_NoFiles(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TGSEARCH_RUNTIME_PATH", t.TempDir())

	assert.NoError(t, initEnv(context.Background()))
}

func TestRunSearch_FailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TGSEARCH_RUNTIME_PATH", dir)
	t.Setenv("API_ID", "12345")
	t.Setenv("API_HASH", "hash")
	t.Setenv("GROUP", "@group")
	t.Setenv("SESSION_FILE", filepath.Join(dir, "missing.session"))

	var out bytes.Buffer
	err := runSearch(context.Background(), &out, "hello")
	require.Error(t, err)
	assert.Zero(t, out.Len())
}

func TestRunSearch_MissingConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TGSEARCH_RUNTIME_PATH", dir)
	t.Setenv("API_ID", "12345")
	t.Setenv("API_HASH", "hash")
	t.Setenv("GROUP", "")
	require.NoError(t, os.Unsetenv("GROUP"))

	var out bytes.Buffer
	err := runSearch(context.Background(), &out, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROUP")
	assert.Zero(t, out.Len())
}

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/dfprop/cli/cmd"
	"github.com/ardnew/dfprop/pkg"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "dfprop-cli")
	if err != nil {
		panic(err)
	}

	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

func noExit(t *testing.T) func(int) {
	t.Helper()

	return func(code int) { t.Fatalf("unexpected exit %d", code) }
}

func TestRun_Get(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "db.dfprop"),
		[]byte("map:{ ; host = localhost ; port = 5432 }"), 0o600))

	var out bytes.Buffer

	ctx := cmd.WithStdio(context.Background(), nil, &out)

	err := Run(ctx, noExit(t), "get", "--root", root, "--one-liner", "db.dfprop")
	require.NoError(t, err)
	assert.Equal(t, "map:{host=localhost;port=5432}\n", out.String())

	out.Reset()

	err = Run(ctx, noExit(t), "--log-level", "warn", "get", "-r", root, "db.dfprop", "port")
	require.NoError(t, err)
	assert.Equal(t, "5432\n", out.String())

	assert.DirExists(t, pkg.ConfigDir())
	assert.DirExists(t, pkg.CacheDir())
}

func TestRun_InitThenLoad(t *testing.T) {
	require.NoError(t, Run(context.Background(), noExit(t),
		"--log-format", "json", "init", "--force"))

	data, err := os.ReadFile(configFile())
	require.NoError(t, err)
	assert.Contains(t, string(data), "log-format = json")

	r, err := loadConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "json", r.(config)["log-format"])
}

func TestRun_ParseError(t *testing.T) {
	assert.Error(t, Run(context.Background(), noExit(t), "get"))
}

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmityWilder/rlbuild/internal/manifest"
)

const testManifest = `
base {
  sources = ["core.c"]
  defines = { PLATFORM_DESKTOP = true }
  symbols = ["InitWindow", "CloseWindow"]
}

feature "support_module_rtextures" {
  sources = ["textures.c"]
  defines = { SUPPORT_MODULE_RTEXTURES = true }
  symbols = ["LoadTexture"]
}

feature "support_module_rtext" {
  implies = ["support_module_rtextures"]
  sources = ["text.c"]
  symbols = ["DrawText"]
}

feature "gl_modern" {
  conflicts = ["gl_legacy"]
  group     = "base"
}

feature "gl_legacy" {
  conflicts = ["gl_modern"]
  group     = "base"
}

feature "support_dangling" {
  group   = "support_module_rtext"
  symbols = ["Orphan"]
}

defaults = ["support_module_rtextures", "gl_modern"]
`

// testEnv lays out a manifest, native sources and a stub toolchain, and
// returns a ready-to-run config.
func testEnv(t *testing.T, features ...string) *Config {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub toolchain scripts require a POSIX shell")
	}

	manifestDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(manifestDir, "graph.hcl"), []byte(testManifest), 0o644))

	srcDir := t.TempDir()
	for _, src := range []string{"core.c", "textures.c", "text.c"} {
		require.NoError(t, os.WriteFile(filepath.Join(srcDir, src), []byte("int v;\n"), 0o644))
	}

	toolDir := t.TempDir()
	cc := filepath.Join(toolDir, "stub-cc")
	ccScript := `#!/bin/sh
out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then shift; out="$1"; fi
  shift
done
: > "$out"
`
	require.NoError(t, os.WriteFile(cc, []byte(ccScript), 0o755))
	ar := filepath.Join(toolDir, "stub-ar")
	require.NoError(t, os.WriteFile(ar, []byte("#!/bin/sh\n: > \"$2\"\n"), 0o755))

	outDir := t.TempDir()
	cfg, err := NewConfig(Config{
		ManifestPath: manifestDir,
		SourceDir:    srcDir,
		OutDir:       outDir,
		SurfaceOut:   filepath.Join(outDir, "surface.txt"),
		Features:     features,
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
		CC:           cc,
		AR:           ar,
		LogFormat:    "text",
		LogLevel:     "error",
		WorkerCount:  2,
	})
	require.NoError(t, err)
	return cfg
}

func TestAppRun(t *testing.T) {
	t.Run("full pipeline", func(t *testing.T) {
		cfg := testEnv(t, "support_module_rtext")
		var out strings.Builder
		a := NewApp(&out, cfg, manifest.NewLoader())

		err := a.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Done, a.State())

		artifact := strings.TrimSpace(out.String())
		assert.FileExists(t, artifact)
		assert.True(t, strings.HasPrefix(filepath.Base(artifact), "libraylib_"))

		data, err := os.ReadFile(cfg.SurfaceOut)
		require.NoError(t, err)
		symbols := strings.Fields(string(data))
		assert.Contains(t, symbols, "InitWindow")
		assert.Contains(t, symbols, "LoadTexture")
		assert.Contains(t, symbols, "DrawText")
	})

	t.Run("conflict fails during resolving", func(t *testing.T) {
		cfg := testEnv(t, "gl_modern", "gl_legacy")
		var out strings.Builder
		a := NewApp(&out, cfg, manifest.NewLoader())

		err := a.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, Failed, a.State())
		assert.Contains(t, err.Error(), "conflicting flags")

		// Fail fast: no artifact may exist after a resolution failure.
		entries, readErr := os.ReadDir(cfg.OutDir)
		require.NoError(t, readErr)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".a")
		}
	})

	t.Run("unknown feature fails during resolving", func(t *testing.T) {
		cfg := testEnv(t, "support_module_teleportation")
		var out strings.Builder
		a := NewApp(&out, cfg, manifest.NewLoader())

		err := a.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, Failed, a.State())
		assert.Contains(t, err.Error(), "unknown flag")
	})

	t.Run("graph authoring defect surfaces as fatal", func(t *testing.T) {
		cfg := testEnv(t, "support_dangling")
		var out strings.Builder
		a := NewApp(&out, cfg, manifest.NewLoader())

		err := a.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, Failed, a.State())
		assert.Contains(t, err.Error(), "fatal")
		assert.Contains(t, err.Error(), "Orphan")
	})

	t.Run("empty request builds the defaults", func(t *testing.T) {
		cfg := testEnv(t)
		var out strings.Builder
		a := NewApp(&out, cfg, manifest.NewLoader())

		require.NoError(t, a.Run(context.Background()))
		data, err := os.ReadFile(cfg.SurfaceOut)
		require.NoError(t, err)
		assert.Contains(t, string(data), "LoadTexture")
		assert.NotContains(t, string(data), "DrawText")
	})
}

func TestNewAppPanicsOnBadGraph(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.hcl"), []byte(`
base { sources = ["core.c"] }
feature "a" { implies = ["b"] }
feature "b" { implies = ["a"] }
`), 0o644))

	cfg, err := NewConfig(Config{ManifestPath: dir, SourceDir: dir, OutDir: dir, LogLevel: "error", LogFormat: "text"})
	require.NoError(t, err)

	assert.Panics(t, func() {
		NewApp(os.Stderr, cfg, manifest.NewLoader())
	})
}

func TestConfigValidation(t *testing.T) {
	_, err := NewConfig(Config{SourceDir: "s", OutDir: "o"})
	assert.ErrorContains(t, err, "ManifestPath")

	_, err = NewConfig(Config{ManifestPath: "m", OutDir: "o"})
	assert.ErrorContains(t, err, "SourceDir")

	_, err = NewConfig(Config{ManifestPath: "m", SourceDir: "s"})
	assert.ErrorContains(t, err, "OutDir")
}

func TestStateString(t *testing.T) {
	for state, want := range map[State]string{
		Idle: "idle", Resolving: "resolving", Planning: "planning",
		Compiling: "compiling", Surfacing: "surfacing", Done: "done", Failed: "failed",
	} {
		assert.Equal(t, want, state.String(), fmt.Sprintf("state %d", state))
	}
}

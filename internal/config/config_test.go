package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/tangzhangming/hwgen/internal/jit"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), ConfigFileName, `
[codegen]
isas = ["ArmBase", "AdvSimd", "advsimd.arm64"]
allocate = false
code_cache_size = 65536

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ArmBase", "AdvSimd", "advsimd.arm64"}, cfg.Codegen.ISAs)
	assert.False(t, cfg.Codegen.Allocate)
	assert.Equal(t, 65536, cfg.Codegen.CodeCacheSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	// 未出现的字段保留默认值
	assert.Equal(t, "console", cfg.Log.Format)

	jc, err := cfg.JITConfig()
	require.NoError(t, err)
	assert.True(t, jc.Supports(jit.ISAAdvSimdArm64))
	assert.False(t, jc.Supports(jit.ISACrc32))
	assert.False(t, jc.Allocate)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "failed to read config file")

	bad := writeFile(t, dir, "bad.toml", "[codegen\n")
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Codegen: CodegenConfig{ISAs: []string{"auto", "Sve"}, CodeCacheSize: -1},
		Log:     LogConfig{Level: "loud", Format: "xml"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	errs := multierr.Errors(err)
	assert.Len(t, errs, 5)
	assert.ErrorContains(t, err, `unknown instruction set: "Sve"`)
	assert.ErrorContains(t, err, `cannot be combined`)
	assert.ErrorContains(t, err, "code_cache_size: must be positive")
	assert.ErrorContains(t, err, `unknown level "loud"`)
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestValidateEmptyISAs(t *testing.T) {
	cfg := Default()
	cfg.Codegen.ISAs = nil
	assert.ErrorContains(t, cfg.Validate(), "at least one instruction set")
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Codegen.ISAs = []string{"ArmBase", "Crc32"}
	cfg.Log.Format = "json"

	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestAutoISAs(t *testing.T) {
	jc, err := Default().JITConfig()
	require.NoError(t, err)
	assert.True(t, jc.Supports(jit.ISAArmBase))
	for _, isa := range HostISAs() {
		assert.True(t, jc.ISAs[isa], "host ISA %s not enabled", isa)
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, ConfigFileName, "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	got := FindConfigFile(nested)
	wantAbs, _ := filepath.Abs(want)
	assert.Equal(t, wantAbs, got)

	assert.Empty(t, FindConfigFile(filepath.Join(root, "does-not-exist")))
}

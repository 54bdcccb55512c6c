package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangzhangming/hwgen/internal/errors"
	"github.com/tangzhangming/hwgen/internal/jit"
)

const sumMethod = `
name = "sum"

[[args]]
name = "%a"
class = "vector"

[[args]]
name = "%b"
class = "vector"

[[args]]
name = "%p"
class = "general"

[[node]]
intrinsic = "AdvSimd.Add"
base_type = "int"
simd_size = 16
operands = ["%a", "%b"]
result = "%s"

[[node]]
intrinsic = "AdvSimd.Store"
base_type = "int"
simd_size = 16
operands = ["%p", "%s"]
`

// 浮点常量只能插入常量索引
const brokenMethod = `
name = "broken"

[[args]]
name = "%lane"
class = "general"

[[node]]
intrinsic = "AdvSimd.Insert"
base_type = "float"
simd_size = 16
operands = ["v0", "%lane", "#1.5"]
target = "v0"
`

const crcMethod = `
name = "crc"

[[node]]
intrinsic = "Crc32.ComputeCrc32"
base_type = "uint"
operands = ["x1", "x2"]
target = "x0"
`

const testConfig = `
[codegen]
isas = ["ArmBase", "AdvSimd"]

[log]
level = "error"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run 执行一次命令，返回标准输出与标准错误
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		configPath = ""
		logLevel = ""
	})

	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCompileCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hwgen.toml", testConfig)
	path := writeFile(t, dir, "sum.toml", sumMethod)

	stdout, _, err := run(t, "compile", path)
	require.NoError(t, err)

	want := "sum:\n" +
		"  0000  add v0.4s, v0.4s, v1.4s\n" +
		"  0004  st1 {v0.4s}, [x0]\n" +
		"; registers: %a=v0 %b=v1 %p=x0 %s=v0\n"
	assert.Equal(t, want, stdout)
}

func TestCompileHexFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hwgen.toml", testConfig)
	path := writeFile(t, dir, "sum.toml", sumMethod)

	stdout, _, err := run(t, "compile", "--format", "hex", path)
	require.NoError(t, err)
	assert.Equal(t, "sum:\n4ea18400\n4c007800\n", stdout)

	_, _, err = run(t, "compile", "-f", "elf", path)
	assert.ErrorContains(t, err, `unknown output format "elf"`)
}

func TestCompileDirectoryReportsAllErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hwgen.toml", testConfig)
	writeFile(t, dir, "a_sum.toml", sumMethod)
	writeFile(t, dir, "b_broken.toml", brokenMethod)
	writeFile(t, dir, "c_crc.toml", crcMethod)

	stdout, _, err := run(t, "compile", dir)
	require.Error(t, err)

	// 成功的方法照常输出
	assert.Contains(t, stdout, "sum:\n")
	assert.NotContains(t, stdout, "broken:")

	assert.True(t, stderrors.Is(err, errors.ErrInternal), "missing internal error: %v", err)
	assert.True(t, stderrors.Is(err, jit.ErrISANotSupported), "missing ISA error: %v", err)
}

func TestCompileExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "custom.toml", `
[codegen]
isas = ["Crc32"]
`)
	path := writeFile(t, dir, "crc.toml", crcMethod)

	stdout, _, err := run(t, "compile", "--config", cfg, "--log-level", "error", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "crc32w w0, w1, w2")

	_, _, err = run(t, "compile", "--config", cfg, "--log-level", "loud", path)
	assert.ErrorContains(t, err, `unknown level "loud"`)
}

func TestCompileInstall(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hwgen.toml", testConfig)
	path := writeFile(t, dir, "sum.toml", sumMethod)

	_, stderr, err := run(t, "compile", "--install", path)
	if stderrors.Is(err, jit.ErrExecutableMemory) {
		t.Skip(err)
	}
	require.NoError(t, err)
	assert.Regexp(t, `^installed sum at 0x[0-9a-f]+ \(8 bytes\)\n$`, stderr)
}

func TestCompileMissingFile(t *testing.T) {
	_, _, err := run(t, "compile", filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "failed to read")
}

func TestTableCommand(t *testing.T) {
	stdout, _, err := run(t, "table", "--isa", "crc32")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Crc32.ComputeCrc32 ")
	assert.Contains(t, stdout, "Crc32.ComputeCrc32C")
	assert.NotContains(t, stdout, "Crc32.Arm64")
	assert.Contains(t, stdout, "\n2 intrinsics (Crc32=2)\n")

	stdout, _, err = run(t, "table", "--category", "imm")
	require.NoError(t, err)
	assert.Contains(t, stdout, "AdvSimd.Insert")
	assert.Contains(t, stdout, "special|rmw")
	assert.NotContains(t, stdout, "AdvSimd.Add ")

	_, _, err = run(t, "table", "--isa", "Sve")
	assert.ErrorContains(t, err, "unknown instruction set")

	_, _, err = run(t, "table", "--category", "nothing")
	assert.ErrorContains(t, err, "no intrinsics match")
}

func TestFeaturesCommand(t *testing.T) {
	stdout, _, err := run(t, "features")
	require.NoError(t, err)
	assert.Contains(t, stdout, "host: ")
	assert.Contains(t, stdout, "auto:\n")
	assert.Contains(t, stdout, "  AdvSimd\n")
}

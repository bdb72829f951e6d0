package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docweave/internal/config"
	"docweave/internal/docgen"
	"docweave/internal/driver"
)

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--color=off"}, args...))
	// флаги - глобальные переменные, сбрасываем между запусками
	for _, name := range []string{"overwrite", "diff", "check"} {
		require.NoError(t, rootCmd.Flags().Set(name, "false"))
	}
	err := rootCmd.Execute()
	finishRun()
	return out.String(), err
}

func TestRootDocumentsFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.py")
	out := filepath.Join(dir, "out.py")
	require.NoError(t, os.WriteFile(in, []byte("def add(a, b=0):\n    return a + b\n"), 0o644))

	stdout, err := execute(t, in, out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 blocks inserted")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"""Processes add.`)
}

func TestRootSamePathExitCode(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.py")
	require.NoError(t, os.WriteFile(in, []byte("def f():\n    pass\n"), 0o644))

	_, err := execute(t, in, in)
	require.Error(t, err)
	assert.Equal(t, driver.ExitConflict, driver.ExitCode(err))
}

func TestRootCheckAndDiff(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.py")
	require.NoError(t, os.WriteFile(in, []byte("def f():\n    pass\n"), 0o644))

	_, err := execute(t, "--check", in)
	require.ErrorIs(t, err, errNeedsDocs)
	assert.Equal(t, driver.ExitFailure, driver.ExitCode(err))

	stdout, err := execute(t, "--diff", in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "+    \"\"\"Processes f.\"\"\"")
}

func TestResolveSettingsFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docweave.toml"), []byte("style = \"numpy\"\nsummary = \"humanized\"\n"), 0o644))

	cmd := scanCmd
	require.NoError(t, cmd.ParseFlags([]string{"--style=sphinx"}))
	t.Cleanup(func() { resetFlag(cmd, "style") })

	st, err := resolveSettings(cmd, dir)
	require.NoError(t, err)
	assert.Equal(t, docgen.StyleSphinx, st.doc.Style)
	assert.Equal(t, docgen.SummaryHumanized, st.doc.Summary)
}

// resetFlag возвращает флаг к значению по умолчанию и снимает Changed.
func resetFlag(cmd *cobra.Command, name string) {
	f := cmd.Flags().Lookup(name)
	_ = f.Value.Set(f.DefValue)
	f.Changed = false
}

func TestResolveSettingsUIMode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docweave.toml"), []byte("[batch]\nui = \"on\"\n"), 0o644))
	t.Cleanup(func() { resetFlag(batchCmd, "ui") })

	require.NoError(t, batchCmd.ParseFlags(nil))
	st, err := resolveSettings(batchCmd, dir)
	require.NoError(t, err)
	assert.Equal(t, config.UIOn, st.ui, "taken from docweave.toml")

	require.NoError(t, batchCmd.ParseFlags([]string{"--ui=OFF"}))
	st, err = resolveSettings(batchCmd, dir)
	require.NoError(t, err)
	assert.Equal(t, config.UIOff, st.ui, "flag wins over the file")

	require.NoError(t, batchCmd.ParseFlags([]string{"--ui=maybe"}))
	_, err = resolveSettings(batchCmd, dir)
	assert.Error(t, err)

	assert.True(t, useProgressUI(config.UIOn, nil))
	assert.False(t, useProgressUI(config.UIOff, nil))
}

func TestRootProfileFlags(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.py")
	require.NoError(t, os.WriteFile(in, []byte("def f():\n    pass\n"), 0o644))
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")
	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("cpu-profile", "")
		_ = rootCmd.PersistentFlags().Set("mem-profile", "")
	})

	_, err := execute(t, "--cpu-profile", cpu, "--mem-profile", mem, in, filepath.Join(dir, "out.py"))
	require.NoError(t, err)
	assert.FileExists(t, cpu)
	assert.FileExists(t, mem)
}

func TestBatchUsesConfigUIMode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docweave.toml"), []byte("[batch]\nui = \"off\"\n"), 0o644))
	src := filepath.Join(dir, "pkg")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "m.py"), []byte("def f():\n    pass\n"), 0o644))
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(out, 0o755))
	t.Cleanup(func() { resetFlag(batchCmd, "out-dir") })

	stdout, err := execute(t, "batch", "--out-dir", out, src)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 files, 1 blocks, 0 failed")
	assert.FileExists(t, filepath.Join(out, "pkg", "m.py"))
}

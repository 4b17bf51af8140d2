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

var pngHeader = []byte{
	0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89,
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestInspectAcceptsImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cake.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	out, _, err := execute(t, "inspect", "--instant", path)
	require.NoError(t, err)

	assert.Contains(t, out, "📸")
	assert.Contains(t, out, "cake.png")
	assert.Contains(t, out, "image/png")
	assert.Contains(t, out, "preview blob:intake/")
	assert.Contains(t, out, "cake.png uploaded successfully")
}

func TestInspectRejectsWrongType(t *testing.T) {
	dir := t.TempDir()
	cake := filepath.Join(dir, "cake.png")
	menu := filepath.Join(dir, "menu.pdf")
	require.NoError(t, os.WriteFile(cake, pngHeader, 0o644))
	require.NoError(t, os.WriteFile(menu, []byte("%PDF-1.7\n"), 0o644))

	out, _, err := execute(t, "inspect", "--instant", cake, menu)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 files were not accepted", err.Error())
	assert.Contains(t, out, "rejected(wrong_type)")
	assert.Contains(t, out, "Please select an image file (JPG, PNG, GIF)")
}

func TestInspectWithPolicyFile(t *testing.T) {
	dir := t.TempDir()
	menu := filepath.Join(dir, "menu.pdf")
	policy := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(menu, []byte("%PDF-1.7\n"), 0o644))
	require.NoError(t, os.WriteFile(policy, []byte("allowed_types: [application/pdf]\n"), 0o644))

	out, _, err := execute(t, "--policy", policy, "inspect", "--instant", menu)
	require.NoError(t, err)
	assert.Contains(t, out, "📕")
	assert.Contains(t, out, "no preview")
}

func TestInspectMissingFile(t *testing.T) {
	_, stderr, err := execute(t, "inspect", "--instant", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.Contains(t, stderr, "Cannot read file")
}

func TestSubmit(t *testing.T) {
	out, stderr, err := execute(t, "submit", "--name", "Ada", "--recipe", "Lemon tart", "--details", "Bake at 180C")
	require.NoError(t, err)
	assert.Contains(t, out, "Thank you for your submission!")
	assert.Contains(t, out, "Lemon tart")
	assert.Contains(t, stderr, "Recipe submission")

	_, _, err = execute(t, "submit", "--name", "Ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipeName (required)")
}

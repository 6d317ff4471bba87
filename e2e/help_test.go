//go:build e2e && unix

package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpFlagListsFlags(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "--help exits zero")

	output := string(out)
	assert.Contains(t, output, "Usage: glide [flags] <file>")
	assert.Contains(t, output, "-config")
	assert.Contains(t, output, "-log-level")
}

func TestNoArgumentsPrintsUsage(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath).CombinedOutput()
	require.Error(t, err, "a missing file argument exits non-zero")
	assert.Contains(t, string(out), "Usage: glide")
}

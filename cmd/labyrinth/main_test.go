package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/testutils"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ringYAML = `
name: ring
start: A
cells:
  - id: A
    passages: [{to: B, cost: 10}, {to: C, cost: 15}]
  - id: B
    passages: [{to: C, cost: 20}, {to: D, cost: 5}]
  - id: C
    passages: [{to: D, cost: 30}]
  - id: D
    passages: [{to: A, cost: 1}]
`

const brokenYAML = `
name: broken
start: A
cells:
  - id: A
    passages: [{to: GHOST, cost: 1}]
`

// resetFlags restores every flag to its default, since cobra commands are
// package globals and keep values between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with fresh flags.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "labyrinth version "+labyrinth.Version+"\n", out)
}

func TestRouteCommand_JSON(t *testing.T) {
	dir := testutils.SetupMazeDir(t, map[string]string{"ring.yaml": ringYAML})

	out, err := run(t, "route", "ring", "--dir", dir, "--store", "none", "--json=true", "--headless=false", "--policy", "first", "--start", "")
	require.NoError(t, err)

	var rec domain.RouteRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, []string{"A", "B", "C", "D", "A"}, rec.Cells)
	assert.Equal(t, 61, rec.TravelTime)
}

func TestRouteCommand_Headless(t *testing.T) {
	dir := testutils.SetupMazeDir(t, map[string]string{"ring.yaml": ringYAML})

	out, err := run(t, "route", "ring", "--dir", dir, "--store", "none", "--json=false", "--headless=true", "--policy", "first", "--start", "C")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[Cell(C) to Cell(D): 30"))
}

func TestRouteCommand_UnknownMaze(t *testing.T) {
	dir := testutils.SetupMazeDir(t, nil)

	_, err := run(t, "route", "nope", "--dir", dir, "--store", "none", "--json=true", "--start", "")
	assert.ErrorIs(t, err, domain.ErrMazeNotFound)
}

func TestRoutesCommands_FileStore(t *testing.T) {
	dir := testutils.SetupMazeDir(t, map[string]string{"ring.yaml": ringYAML})

	out, err := run(t, "route", "ring", "--dir", dir, "--store", "file", "--json=true", "--headless=false", "--policy", "first", "--start", "")
	require.NoError(t, err)
	var rec domain.RouteRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))

	out, err = run(t, "routes", "list", "--dir", dir, "--store", "file")
	require.NoError(t, err)
	assert.Equal(t, rec.ID+"\n", out)

	out, err = run(t, "routes", "show", rec.ID, "--dir", dir, "--store", "file", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "# Route through ring")

	_, err = run(t, "routes", "delete", rec.ID, "--dir", dir, "--store", "file")
	require.NoError(t, err)

	_, err = run(t, "routes", "show", rec.ID, "--dir", dir, "--store", "file", "--json=false")
	assert.ErrorIs(t, err, domain.ErrRouteNotFound)
}

func TestDescribeCommand(t *testing.T) {
	dir := testutils.SetupMazeDir(t, map[string]string{"ring.yaml": ringYAML, "broken.yaml": brokenYAML})

	out, err := run(t, "describe", "--dir", dir, "--store", "none")
	require.NoError(t, err)
	assert.Equal(t, "broken\nring\n", out)

	out, err = run(t, "describe", "ring", "--dir", dir, "--store", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "# ring")
	assert.Contains(t, out, "- **Members**: A, B, C, D")
	assert.Contains(t, out, "Cell(D)\n\tCell(A): 1")
}

func TestValidateCommand(t *testing.T) {
	dir := testutils.SetupMazeDir(t, map[string]string{"ring.yaml": ringYAML, "broken.yaml": brokenYAML})

	out, err := run(t, "validate", "ring", "--dir", dir, "--store", "none")
	require.NoError(t, err)
	assert.Equal(t, "ring: valid\n", out)

	out, err = run(t, "validate", "--dir", dir, "--store", "none")
	require.Error(t, err)
	assert.Contains(t, out, "broken: invalid\n  - cell \"A\": passage to unknown cell \"GHOST\"")
	assert.Contains(t, out, "ring: valid")
}

func TestConfigFile(t *testing.T) {
	dir := testutils.SetupMazeDir(t, map[string]string{"ring.yaml": ringYAML})
	cfgPath := filepath.Join(t.TempDir(), "labyrinth.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("dir: "+dir+"\nstore:\n  kind: s3\n"), 0644))

	_, err := run(t, "describe", "--config", cfgPath, "--dir", dir)
	assert.ErrorContains(t, err, `unknown store kind "s3"`)
}

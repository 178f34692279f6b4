package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSpec = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        '200':
          description: ok
    post:
      summary: Create a pet
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
      responses:
        '201':
          description: created
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
    Unrelated:
      type: object
`

func runCmd(t *testing.T, args ...string) error {
	t.Helper()
	// An apisnip.yaml in the working directory would be picked up.
	t.Chdir(t.TempDir())
	cmd := RootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRunWithSelection(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "spec.yaml")
	out := filepath.Join(dir, "out.yaml")
	require.NoError(t, os.WriteFile(in, []byte(testSpec), 0o644))

	err := runCmd(t, in, out, "--select", "POST /pets")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "post:")
	require.NotContains(t, content, "get:")
	require.Contains(t, content, "Pet:")
	require.NotContains(t, content, "Unrelated:")
}

func TestRunWithSelectionToJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "spec.yaml")
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte(testSpec), 0o644))

	err := runCmd(t, in, "-o", out, "-s", "GET /pets", "--format", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(strings.TrimSpace(string(data)), "{"))
	require.Contains(t, string(data), `"get"`)
}

func TestRunUnknownEndpoint(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(in, []byte(testSpec), 0o644))

	err := runCmd(t, in, "--select", "DELETE /pets")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no such endpoint")
}

func TestRunBadSelectionSyntax(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(in, []byte(testSpec), 0o644))

	err := runCmd(t, in, "--select", "GETPETS")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid selection")
}

func TestRunMissingInput(t *testing.T) {
	err := runCmd(t, filepath.Join(t.TempDir(), "nope.yaml"), "--select", "GET /pets")
	require.Error(t, err)
}

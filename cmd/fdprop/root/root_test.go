package root

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdprop/pkg/fd"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQueensCommand(t *testing.T) {
	out, err := run(t, "queens", "-n", "4", "--heuristic", "input")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1 3 0 2\n2 0 3 1\n"), out)
	assert.Contains(t, out, "2 solution(s)")
}

func TestQueensCommand_Board(t *testing.T) {
	out, err := run(t, "queens", "-n", "4", "--limit", "1", "--heuristic", "input", "--board")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, ". Q . .\n. . . Q\nQ . . .\n. . Q .\n"), out)
}

func TestQueensCommand_UnknownHeuristic(t *testing.T) {
	_, err := run(t, "queens", "--heuristic", "random")
	assert.ErrorContains(t, err, "unknown heuristic")
}

func TestSumCommand(t *testing.T) {
	out, err := run(t, "sum", "-k", "2", "--min", "0", "--max", "3", "--total", "4", "--heuristic", "input")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1 3\n2 2\n3 1\n"), out)
	assert.Contains(t, out, "3 solution(s)")

	out, err = run(t, "sum", "-k", "2", "--max", "3", "--total", "4", "--distinct")
	require.NoError(t, err)
	assert.Contains(t, out, "2 solution(s)")
}

func TestSumCommand_Weights(t *testing.T) {
	out, err := run(t, "sum", "--weights", "2,3", "--min", "0", "--max", "5", "--total", "12", "--heuristic", "input")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "0 4\n3 2\n"), out)
	assert.Contains(t, out, "2 solution(s)")
}

func TestTourCommand(t *testing.T) {
	out, err := run(t, "tour", "--cities", "5", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "tour 1 ")
	assert.Contains(t, out, "24 tour(s) examined")
}

func TestBenchCommand(t *testing.T) {
	out, err := run(t, "bench", "--from", "4", "--to", "6", "--workers", "2")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Regexp(t, `^4\s+2\s`, lines[1])
	assert.Regexp(t, `^5\s+10\s`, lines[2])
	assert.Regexp(t, `^6\s+4\s`, lines[3])

	_, err = run(t, "bench", "--from", "5", "--to", "4")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "fdprop "+fd.Version), out)
}

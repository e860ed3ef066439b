package script

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/chainset/internal/errors"
	"git.home.luguber.info/inful/chainset/internal/hashset"
)

func quietRunner(base ...hashset.Option) *Runner {
	return NewRunner(slog.New(slog.DiscardHandler), base...)
}

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(`elements: int
set:
  bucket_count: 4
ops:
  - add: 1
  - contains: 1
  - remove: 1
  - rehash: 8
  - size: true
  - describe: true
  - expect: "[ 0, 8 |  ]"
`))
	require.NoError(t, err)
	assert.Equal(t, KindInt, sc.Elements)
	assert.Equal(t, 4, sc.Set.BucketCount)
	require.Len(t, sc.Ops, 7)
	assert.Equal(t, Op{Name: OpAdd, Arg: "1", Line: 5}, sc.Ops[0])
	assert.Equal(t, OpExpect, sc.Ops[6].Name)
	assert.Equal(t, "[ 0, 8 |  ]", sc.Ops[6].Arg)
}

func TestParseDefaultsToStrings(t *testing.T) {
	sc, err := Parse([]byte("ops:\n  - add: hello\n"))
	require.NoError(t, err)
	assert.Equal(t, KindString, sc.Elements)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown kind", "elements: float\n", "unknown element kind"},
		{"unknown op", "ops:\n  - insert: 1\n", "unknown op"},
		{"two keys", "ops:\n  - add: 1\n    remove: 1\n", "exactly one key"},
		{"non scalar", "ops:\n  - add: [1, 2]\n", "scalar argument"},
		{"bad int", "elements: int\nops:\n  - add: one\n", "not an int"},
		{"bad rehash", "ops:\n  - rehash: big\n", "not a bucket count"},
		{"negative buckets", "set:\n  bucket_count: -2\n", "cannot be negative"},
		{"malformed", "ops: [\n", "decode script"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.body))
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestRunGrowthScenario(t *testing.T) {
	sc, err := Parse([]byte(`elements: int
set:
  bucket_count: 4
  load_factor_limit: 0.75
ops:
  - add: 1
  - add: 2
  - add: 3
  - expect: "[ 3, 4 | { b1: 1 } { b2: 2 } { b3: 3 } ]"
  - add: 4
  - add: 4
  - contains: 4
  - size: true
  - expect: "[ 4, 8 | { b1: 1 } { b2: 2 } { b3: 3 } { b4: 4 } ]"
`))
	require.NoError(t, err)

	tr, err := quietRunner().Run(sc)
	require.NoError(t, err)
	require.NoError(t, tr.Err())
	assert.Equal(t, 4, tr.Size)
	assert.Equal(t, 8, tr.Buckets)
	assert.Equal(t, 0.5, tr.LoadFactor)
	assert.Equal(t, "false", tr.Steps[5].Result, "duplicate add")
	assert.Equal(t, "true", tr.Steps[6].Result)
	assert.Equal(t, "4", tr.Steps[7].Result)
}

func TestRunStringsWithBaseOptions(t *testing.T) {
	sc, err := Parse([]byte(`ops:
  - add: a
  - add: b
  - remove: a
  - remove: a
  - describe: true
`))
	require.NoError(t, err)

	tr, err := quietRunner(hashset.WithBucketCount(1), hashset.WithLoadFactorLimit(5)).Run(sc)
	require.NoError(t, err)
	assert.Equal(t, []string{"true", "true", "true", "false", "[ 1, 1 | { b0: b } ]"},
		[]string{tr.Steps[0].Result, tr.Steps[1].Result, tr.Steps[2].Result, tr.Steps[3].Result, tr.Steps[4].Result})
	assert.Equal(t, "[ 1, 1 | { b0: b } ]", tr.Final)
}

func TestRunScriptOverridesBase(t *testing.T) {
	sc, err := Parse([]byte("set:\n  bucket_count: 7\n  preserve_order_on_rehash: true\nops: []\n"))
	require.NoError(t, err)
	tr, err := quietRunner(hashset.WithBucketCount(3)).Run(sc)
	require.NoError(t, err)
	assert.Equal(t, 7, tr.Buckets)
	assert.Equal(t, "[ 0, 7 |  ]", tr.Final)
}

func TestRunRecordsStepErrors(t *testing.T) {
	sc, err := Parse([]byte("ops:\n  - add: x\n  - rehash: 5\n  - contains: x\n"))
	require.NoError(t, err)

	tr, err := quietRunner().Run(sc)
	require.NoError(t, err)
	require.Len(t, tr.Steps, 3)
	require.ErrorIs(t, tr.Steps[1].Err, hashset.ErrInvalidArgument)
	assert.Equal(t, "true", tr.Steps[2].Result, "run continues after a step error")

	stepErr := tr.Err()
	require.Error(t, stepErr)
	assert.True(t, errors.IsCategory(stepErr, errors.CategoryScript))
}

func TestRunExpectMismatchStops(t *testing.T) {
	sc, err := Parse([]byte("ops:\n  - add: x\n  - expect: \"[ 0, 10 |  ]\"\n  - add: y\n"))
	require.NoError(t, err)

	tr, err := quietRunner().Run(sc)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryScript))
	require.Len(t, tr.Steps, 2)
	assert.Equal(t, 1, tr.Size)
}

func TestRunRejectsInvalidSizing(t *testing.T) {
	sc, err := Parse([]byte("ops: []\n"))
	require.NoError(t, err)
	_, err = quietRunner(hashset.WithBucketCount(0)).Run(sc)
	require.ErrorIs(t, err, hashset.ErrInvalidConfig)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestTranscriptWrite(t *testing.T) {
	sc, err := Parse([]byte("elements: int\nops:\n  - add: 3\n  - rehash: 2\n"))
	require.NoError(t, err)
	tr, err := quietRunner().Run(sc)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tr.Write(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "add")
	assert.Contains(t, lines[0], "true")
	assert.Contains(t, lines[1], "error: invalid argument")
	assert.Equal(t, "final: [ 1, 10 | { b3: 3 } ]", lines[2])
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ops:\n  - add: z\n"), 0o600))
	sc, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, sc.Ops, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

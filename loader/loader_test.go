package loader

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/panyam/wea/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareLeavesPlainScriptsAlone(t *testing.T) {
	src, err := Prepare("a.wea", []byte("wea_emit 1\nwea_emit 2\n"))
	require.NoError(t, err)
	assert.Equal(t, "wea_emit 1\nwea_emit 2\n", src.Text)
	assert.Empty(t, src.Meta.Name)
}

func TestPrepareReadsFrontMatterAndKeepsLines(t *testing.T) {
	data := `---
name: demo
max_call_depth: 10
vars:
  greeting: merhaba
  nums: [1, 2]
---
wea_emit greeting
`
	src, err := Prepare("demo.wea", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, "demo", src.Meta.Name)
	assert.Equal(t, 10, src.Meta.MaxCallDepth)
	assert.Equal(t, "merhaba", src.Meta.Vars["greeting"])
	assert.Equal(t, []any{1, 2}, src.Meta.Vars["nums"])

	lines := strings.Split(src.Text, "\n")
	require.Greater(t, len(lines), 7)
	assert.Equal(t, "wea_emit greeting", lines[7])
	for _, line := range lines[:7] {
		assert.Empty(t, line)
	}
}

func TestPrepareExtractsMarkdownCodeBlocks(t *testing.T) {
	data := "# Title\n\nSome prose.\n\n```wea\nwea_emit 1\n```\n\n```go\nfmt.Println()\n```\n\n```wea\nwea_emit 2\n```\n"
	src, err := Prepare("notes.md", []byte(data))
	require.NoError(t, err)

	lines := strings.Split(src.Text, "\n")
	assert.Equal(t, "wea_emit 1", lines[5])
	assert.Equal(t, "wea_emit 2", lines[13])
	var code []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			code = append(code, line)
		}
	}
	assert.Equal(t, []string{"wea_emit 1", "wea_emit 2"}, code)

	stmts, errs := parser.ParseSource(src.Text)
	assert.Empty(t, errs)
	require.Len(t, stmts, 2)
	assert.Equal(t, 14, stmts[1].Pos())
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLoader(NewMemoryFS(nil))
	_, err := l.Load("nope.wea")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckKeepsOrderAndIsolatesFailures(t *testing.T) {
	fs := NewMemoryFS(map[string]string{
		"good.wea": "wea_unit x = 1\nwea_emit x\n",
		"bad.wea":  "wea_emit 1 +\nwea_unit = 2\n",
	})
	l := NewLoader(fs)
	results := l.Check(context.Background(), "good.wea", "missing.wea", "bad.wea")
	require.Len(t, results, 3)

	assert.Equal(t, "good.wea", results[0].Path)
	assert.False(t, results[0].HasErrors())
	assert.Len(t, results[0].Statements, 2)

	require.Len(t, results[1].Errors, 1)
	assert.ErrorIs(t, results[1].Errors[0], ErrNotFound)

	assert.Len(t, results[2].Errors, 2)
	for _, err := range results[2].Errors {
		assert.True(t, errors.Is(err, parser.ErrSyntax), "%v", err)
	}

	var buf bytes.Buffer
	results[2].PrintErrors(&buf, "bad.wea")
	assert.Equal(t, 2, strings.Count(buf.String(), "bad.wea: "))
}

func TestCheckCapsErrorsPerFile(t *testing.T) {
	l := NewLoader(NewMemoryFS(map[string]string{"bad.wea": "wea_unit = 1\nwea_unit = 2\nwea_unit = 3\n"}))
	l.MaxErrors = 1
	results := l.Check(context.Background(), "bad.wea")
	assert.Len(t, results[0].Errors, 1)
}

func TestCompositeFSRoutesByLongestPrefix(t *testing.T) {
	fallback := NewMemoryFS(map[string]string{"local.wea": "local"})
	mem := NewMemoryFS(map[string]string{"mem://lib/a.wea": "a"})
	deep := NewMemoryFS(map[string]string{"mem://lib/deep/b.wea": "b"})

	fs := NewCompositeFS()
	fs.SetFallback(fallback)
	fs.Mount("mem://", mem)
	fs.Mount("mem://lib/deep/", deep)

	data, err := fs.ReadFile("mem://lib/a.wea")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
	data, err = fs.ReadFile("mem://lib/deep/b.wea")
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
	assert.True(t, fs.Exists("local.wea"))
	assert.False(t, fs.Exists("mem://lib/deep/a.wea"))

	require.NoError(t, fs.WriteFile("out.txt", []byte("x")))
	assert.True(t, fallback.Exists("out.txt"))

	files, err := fs.ListFiles("mem://")
	require.NoError(t, err)
	assert.Equal(t, []string{"mem://lib/a.wea"}, files)
}

func TestCompositeFSWithoutMounts(t *testing.T) {
	_, err := NewCompositeFS().ReadFile("x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalFSRoundTrip(t *testing.T) {
	fs := NewLocalFS(t.TempDir())
	require.NoError(t, fs.WriteFile("sub/out.txt", []byte("hello")))
	assert.True(t, fs.Exists("sub/out.txt"))
	data, err := fs.ReadFile("sub/out.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	files, err := fs.ListFiles("sub")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/out.txt"}, files)
}

func TestHTTPFileSystemIsReadOnly(t *testing.T) {
	fs := NewHTTPFileSystem("https://example.invalid")
	assert.ErrorIs(t, fs.WriteFile("a", nil), ErrReadOnly)
	_, err := fs.ListFiles("/")
	assert.ErrorIs(t, err, ErrReadOnly)
}

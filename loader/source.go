package loader

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Meta is the optional front matter at the top of a script:
//
//	---
//	name: demo
//	max_call_depth: 100
//	vars:
//	  greeting: merhaba
//	---
type Meta struct {
	Name         string         `yaml:"name" toml:"name" json:"name"`
	Description  string         `yaml:"description" toml:"description" json:"description"`
	MaxCallDepth int            `yaml:"max_call_depth" toml:"max_call_depth" json:"max_call_depth"`
	Vars         map[string]any `yaml:"vars" toml:"vars" json:"vars"`
}

// Source is a script ready to hand to the runtime.  Text keeps the line
// numbering of the file it came from.
type Source struct {
	Path string
	Text string
	Meta Meta
}

// IsMarkdown reports whether path is loaded as literate markdown.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// Prepare strips front matter and, for markdown files, keeps only the
// fenced code blocks tagged wea.  Removed lines are blanked rather than
// dropped so error line numbers still point into the file.
func Prepare(path string, data []byte) (*Source, error) {
	src := &Source{Path: path}
	rest, err := frontmatter.Parse(bytes.NewReader(data), &src.Meta)
	if err != nil {
		return nil, fmt.Errorf("%w in %s: %v", ErrFrontMatter, path, err)
	}
	removed := bytes.Count(data, []byte("\n")) - bytes.Count(rest, []byte("\n"))
	body := strings.Repeat("\n", max(removed, 0)) + string(rest)

	if IsMarkdown(path) {
		body = CodeBlocks([]byte(body), "wea")
	}
	src.Text = body
	src.Meta.Vars = normalizeKeys(src.Meta.Vars).(map[string]any)
	return src, nil
}

// CodeBlocks keeps the lines of every fenced block whose info string is lang
// and blanks all the others.
func CodeBlocks(markdown []byte, lang string) string {
	lines := make([]string, bytes.Count(markdown, []byte("\n"))+1)
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if string(block.Language(markdown)) == lang {
			segs := block.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				line := bytes.Count(markdown[:seg.Start], []byte("\n"))
				lines[line] = strings.TrimRight(string(seg.Value(markdown)), "\r\n")
			}
		}
		return ast.WalkSkipChildren, nil
	})
	return strings.Join(lines, "\n")
}

// normalizeKeys turns the map[any]any that YAML front matter decodes into
// map[string]any all the way down.
func normalizeKeys(in any) any {
	switch v := in.(type) {
	case map[string]any:
		for k, item := range v {
			if item != nil {
				v[k] = normalizeKeys(item)
			}
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = item
		}
		return normalizeKeys(out)
	case []any:
		for i, item := range v {
			if item != nil {
				v[i] = normalizeKeys(item)
			}
		}
	}
	return in
}

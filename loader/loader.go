package loader

import (
	"context"
	"fmt"
	"log/slog"
	goruntime "runtime"
	"time"

	"github.com/panyam/wea/decl"
	"github.com/panyam/wea/parser"
	"golang.org/x/sync/errgroup"
)

// Loader reads scripts from a FileSystem and prepares them for running.
type Loader struct {
	FS     FileSystem
	Logger *slog.Logger

	// MaxErrors caps the errors kept per file when checking.  0 means no cap.
	MaxErrors int
}

func NewLoader(fs FileSystem) *Loader {
	if fs == nil {
		fs = NewDefaultFS()
	}
	return &Loader{FS: fs, Logger: slog.Default()}
}

// Load reads path and strips its front matter and markdown.
func (l *Loader) Load(path string) (*Source, error) {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load '%s': %w", path, err)
	}
	src, err := Prepare(path, data)
	if err != nil {
		return nil, err
	}
	l.Logger.Debug("loaded script", "path", path, "bytes", len(data), "markdown", IsMarkdown(path))
	return src, nil
}

// CheckResult is the outcome of loading and parsing one file.
type CheckResult struct {
	Path       string
	Source     *Source
	Statements []decl.Stmt
	ErrorCollector
}

// Check loads and parses every path concurrently.  Results come back in the
// order of paths; a file that fails does not stop the others.
func (l *Loader) Check(ctx context.Context, paths ...string) []*CheckResult {
	results := make([]*CheckResult, len(paths))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(goruntime.NumCPU())
	for i, path := range paths {
		results[i] = &CheckResult{Path: path, ErrorCollector: ErrorCollector{MaxErrors: l.MaxErrors}}
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].AddErrors(err)
				return nil
			}
			l.check(results[i])
			return nil
		})
	}
	_ = group.Wait()
	return results
}

func (l *Loader) check(res *CheckResult) {
	start := time.Now()
	src, err := l.Load(res.Path)
	if err != nil {
		res.AddErrors(err)
		return
	}
	res.Source = src
	stmts, errs := parser.ParseSource(src.Text)
	res.Statements = stmts
	res.AddErrors(errs...)
	l.Logger.Debug("checked script", "path", res.Path, "statements", len(stmts), "errors", len(res.Errors), "elapsed", time.Since(start))
}

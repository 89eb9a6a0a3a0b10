package driver

import (
	"context"
	"errors"
	"fmt"

	"nkl/internal/ast"
	"nkl/internal/binder"
	"nkl/internal/bound"
	"nkl/internal/diag"
	"nkl/internal/observ"
	"nkl/internal/source"
	"nkl/internal/trace"
)

type CompileOptions struct {
	MaxDiagnostics int
	// SkipEntry binds the file without requiring main.
	SkipEntry bool
	// Observer, if set, is told when each stage starts.
	Observer StageObserver
}

// CompileResult holds everything produced for one file. Later fields are
// zero when an earlier stage failed; Bag says why.
type CompileResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Builder  *ast.Builder
	AST      *ast.File
	Universe *binder.Universe
	Root     bound.NodeID
	Main     bound.NodeID
	Bag      *diag.Bag
	Timing   observ.Report
}

// Succeeded reports whether every stage ran without errors.
func (r *CompileResult) Succeeded() bool {
	return r.Root.IsValid() && !r.Bag.HasErrors()
}

// Compile parses, binds and checks the entry point of one file.
// The tracer is taken from ctx.
func Compile(ctx context.Context, path string, opts CompileOptions) (*CompileResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return compileFile(ctx, fs, fileID, opts), nil
}

// CompileSource is Compile for in-memory content.
func CompileSource(ctx context.Context, name string, content []byte, opts CompileOptions) *CompileResult {
	fs := source.NewFileSet()
	return compileFile(ctx, fs, fs.AddVirtual(name, content), opts)
}

func compileFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts CompileOptions) *CompileResult {
	file := fs.Get(fileID)
	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeFile, "file:"+file.Path, 0)
	timer := observ.NewTimer(tracer, fileSpan.ID())
	res := &CompileResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	defer func() {
		res.Timing = timer.Report()
		fileSpan.End(fmt.Sprintf("%d diagnostics", res.Bag.Len()))
	}()
	observe := func(s Stage) {
		if opts.Observer != nil {
			opts.Observer(s)
		}
	}

	observe(StageParse)
	idx := timer.Begin("parse")
	builder, parsed := parseFile(file, res.Bag)
	res.Builder, res.AST = builder, parsed.File
	timer.End(idx, fmt.Sprintf("%d items", len(parsed.File.Items)))
	if parsed.Failed || res.Bag.HasErrors() {
		return res
	}

	observe(StageBind)
	res.Universe = binder.NewUniverse(fs)
	idx = timer.Begin("bind")
	root, err := binder.BindFile(res.Universe, builder, parsed.File, binder.Options{
		Tracer: tracer,
		Parent: timer.SpanID(idx),
	})
	timer.End(idx, fmt.Sprintf("%d nodes", res.Universe.Nodes.Len()))
	if err != nil {
		reportError(res.Bag, fileID, err)
		return res
	}
	res.Root = root

	if opts.SkipEntry {
		return res
	}
	observe(StageEntry)
	idx = timer.Begin("entry")
	mainID, err := CheckEntry(res.Universe, fileID)
	timer.End(idx, "")
	if err != nil {
		reportError(res.Bag, fileID, err)
		return res
	}
	res.Main = mainID
	return res
}

func reportError(bag *diag.Bag, fileID source.FileID, err error) {
	var be *binder.Error
	if errors.As(err, &be) {
		bag.Add(be.Diagnostic())
		return
	}
	bag.Add(diag.NewError(diag.UnknownCode, source.Span{File: fileID}, err.Error()))
}

package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"nkl/internal/diag"
	"nkl/internal/observ"
	"nkl/internal/project"
	"nkl/internal/source"
)

type CheckOptions struct {
	Jobs           int
	MaxDiagnostics int
	// Cache may be nil.
	Cache *DiskCache
	// Events, if set, receives progress; the caller closes it after
	// CheckFiles returns.
	Events chan<- Event
}

// CheckResult is the outcome of checking one file.
type CheckResult struct {
	Path    string
	FileSet *source.FileSet
	Bag     *diag.Bag
	Cached  bool
	Timing  observ.Report
}

// ListSourceFiles возвращает отсортированный список всех *.nkl файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, project.SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every *.nkl file under dir.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) ([]CheckResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return CheckFiles(ctx, files, opts)
}

// CheckFiles compiles each file independently and in parallel. Every file
// is a separate program with its own main. Results keep the order of paths.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions) ([]CheckResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]CheckResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		emit(gctx, opts.Events, Event{File: path, Status: StatusQueued})
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = checkOne(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkOne(ctx context.Context, path string, opts CheckOptions) CheckResult {
	res := CheckResult{Path: path, FileSet: source.NewFileSet()}
	fileID, err := res.FileSet.Load(path)
	if err != nil {
		res.Bag = diag.NewBag(opts.MaxDiagnostics)
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, fmt.Sprintf("failed to load file: %v", err)))
		emit(ctx, opts.Events, Event{File: path, Status: StatusError})
		return res
	}

	key := KeyFor(res.FileSet.Get(fileID))
	var payload DiskPayload
	if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
		res.Bag = payload.Restore(fileID, opts.MaxDiagnostics)
		res.Cached = true
		res.Timing = payload.Timing
		emit(ctx, opts.Events, Event{File: path, Status: StatusCached})
		return res
	}

	cr := compileFile(ctx, res.FileSet, fileID, CompileOptions{
		MaxDiagnostics: opts.MaxDiagnostics,
		Observer: func(s Stage) {
			emit(ctx, opts.Events, Event{File: path, Stage: s, Status: StatusWorking})
		},
	})
	res.Bag = cr.Bag
	res.Timing = cr.Timing
	// кэш best effort, ошибка записи не ломает проверку
	_ = opts.Cache.Put(key, NewPayload(path, cr.Bag, cr.Timing))

	status := StatusDone
	if cr.Bag.HasErrors() {
		status = StatusError
	}
	emit(ctx, opts.Events, Event{File: path, Status: status})
	return res
}

func emit(ctx context.Context, ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}

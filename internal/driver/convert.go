package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/secretm224/asp-to-dotnet-converter/internal/convert"
	"github.com/secretm224/asp-to-dotnet-converter/internal/pipeline"
)

// sourceExts are the file extensions treated as Classic ASP sources.
var sourceExts = map[string]bool{
	".asp": true,
	".inc": true,
	".vbs": true,
}

// Options configures rule-based conversion.
type Options struct {
	// Stdout returns converted content in the results without touching
	// the filesystem.
	Stdout bool
	// OutDir redirects output files; empty writes beside each input.
	OutDir string
	// Usings prepends the standard using block.
	Usings bool
	// Namespace wraps the output in a namespace when non-empty.
	Namespace string
	// Jobs caps conversion parallelism; <=0 uses GOMAXPROCS.
	Jobs int
	// Sink receives progress events; may be nil.
	Sink pipeline.ProgressSink
}

// Result captures the conversion of a single file.
type Result struct {
	Path    string
	OutPath string
	Output  string
	Err     error
	Elapsed time.Duration
}

// ConvertSource runs the rule engine over one source text and applies
// the configured decoration.
func ConvertSource(src string, opts Options) string {
	out := convert.Convert(src)
	return Decorate(out, opts.Usings, opts.Namespace)
}

// ConvertPaths converts provided files or directories (recursively
// collecting .asp, .inc and .vbs files). Results come back in the same
// deterministic order the files were collected in.
func ConvertPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("convert: no source files found")
	}

	emit(opts.Sink, pipeline.Event{Stage: pipeline.StageRules, Status: pipeline.StatusWorking})
	for _, path := range files {
		emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageRules, Status: pipeline.StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageRules, Status: pipeline.StatusWorking})
			start := time.Now()
			res := convertSingleFile(path, opts)
			res.Elapsed = time.Since(start)
			results[i] = res

			status := pipeline.StatusDone
			if res.Err != nil {
				status = pipeline.StatusError
			}
			emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: status, Err: res.Err, Elapsed: res.Elapsed})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func convertSingleFile(path string, opts Options) Result {
	res := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Output = ConvertSource(string(data), opts)

	if opts.Stdout {
		return res
	}
	res.OutPath = OutputPath(path, opts.OutDir)
	if err := writeOutput(res.OutPath, res.Output); err != nil {
		res.Err = err
	}
	return res
}

// OutputPath derives the .cs destination for a source file.
func OutputPath(path, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".cs"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(path), base)
}

// CollectSourceFiles expands paths into a deduplicated, sorted list of
// ASP source files, walking directories recursively.
func CollectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if sourceExts[strings.ToLower(filepath.Ext(path))] {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		// Explicitly named files are converted regardless of extension.
		addFile(p)
	}

	sort.Strings(files)
	return files, nil
}

// Decorate applies the optional namespace wrapper and using block to
// converted output, in that order.
func Decorate(out string, usings bool, namespace string) string {
	if namespace != "" {
		out = convert.WrapNamespace(out, namespace)
	}
	if usings {
		out = convert.WithUsings(out)
	}
	return out
}

func writeOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func emit(sink pipeline.ProgressSink, ev pipeline.Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(ev)
}

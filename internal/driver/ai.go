package driver

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/secretm224/asp-to-dotnet-converter/internal/dcache"
	"github.com/secretm224/asp-to-dotnet-converter/internal/groq"
	"github.com/secretm224/asp-to-dotnet-converter/internal/pipeline"
)

// AIOptions configures Groq-backed conversion.
type AIOptions struct {
	Client *groq.Client
	// Cache holds previous results; nil disables caching entirely.
	Cache   *dcache.Cache
	NoCache bool

	Stdout    bool
	OutDir    string
	Usings    bool
	Namespace string

	// Sink receives progress events; may be nil.
	Sink pipeline.ProgressSink

	now func() time.Time
}

// AIResult captures the AI conversion of a single file.
type AIResult struct {
	Path    string
	OutPath string
	Output  string
	Cached  bool
	Tokens  int
	Err     error
	Elapsed time.Duration
}

// minRequestGap spaces out upstream calls to stay under the per-minute
// request allowance.
const minRequestGap = time.Minute / groq.RequestsPerMinute

// AIConvertPaths converts files through the Groq API, one at a time.
// Cached results are served without touching the network or the daily
// budget. The first error that is not per-file (budget exhausted,
// cancelled context) stops the run.
func AIConvertPaths(ctx context.Context, paths []string, opts AIOptions) ([]AIResult, error) {
	if opts.Client == nil {
		return nil, errors.New("ai: no client configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("ai: no source files found")
	}

	emit(opts.Sink, pipeline.Event{Stage: pipeline.StageAI, Status: pipeline.StatusWorking})
	for _, path := range files {
		emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageAI, Status: pipeline.StatusQueued})
	}

	results := make([]AIResult, 0, len(files))
	var lastRequest time.Time

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageAI, Status: pipeline.StatusWorking})
		start := time.Now()
		res, err := aiConvertSingleFile(ctx, path, opts, &lastRequest)
		res.Elapsed = time.Since(start)
		results = append(results, res)

		status := pipeline.StatusDone
		if res.Err != nil {
			status = pipeline.StatusError
		}
		emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: status, Err: res.Err, Elapsed: res.Elapsed, Cached: res.Cached})

		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// aiConvertSingleFile returns the per-file result plus a run-fatal error
// for conditions that make continuing pointless.
func aiConvertSingleFile(ctx context.Context, path string, opts AIOptions, lastRequest *time.Time) (AIResult, error) {
	res := AIResult{Path: path}
	now := opts.now
	if now == nil {
		now = time.Now
	}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res, nil
	}
	source := string(data)
	res.Tokens = groq.EstimateTokens(source)

	cache := opts.Cache
	if opts.NoCache {
		cache = nil
	}
	key := dcache.Key(opts.Client.Model(), opts.Client.Prompt(source), source)

	var entry dcache.Entry
	if hit, err := cache.Get(key, &entry); err == nil && hit {
		res.Output = Decorate(entry.Output, opts.Usings, opts.Namespace)
		res.Cached = true
		return res, finishAIResult(&res, opts)
	}

	// Budget and pacing apply only to real upstream calls.
	usage, err := opts.Cache.LoadUsage(now())
	if err != nil {
		res.Err = err
		return res, nil
	}
	if usage.Tokens+uint64(max(res.Tokens, 0)) > groq.DailyTokenLimit {
		res.Err = &groq.Error{
			Kind: groq.KindRateLimited,
			Msg:  "daily token budget exhausted, try again tomorrow",
		}
		return res, res.Err
	}
	if err := paceRequests(ctx, lastRequest, now); err != nil {
		res.Err = err
		return res, err
	}

	out, err := opts.Client.Convert(ctx, source)
	if err != nil {
		res.Err = err
		if fatal := runFatal(err); fatal != nil {
			return res, fatal
		}
		return res, nil
	}

	if _, err := opts.Cache.Charge(now(), res.Tokens); err != nil {
		res.Err = err
		return res, nil
	}
	if cache != nil {
		putErr := cache.Put(key, &dcache.Entry{
			Model:     opts.Client.Model(),
			CreatedAt: now().Unix(),
			Output:    out,
			Tokens:    uint64(max(res.Tokens, 0)),
		})
		// A failed cache write does not fail the conversion.
		_ = putErr
	}

	res.Output = Decorate(out, opts.Usings, opts.Namespace)
	return res, finishAIResult(&res, opts)
}

func finishAIResult(res *AIResult, opts AIOptions) error {
	if opts.Stdout {
		return nil
	}
	res.OutPath = OutputPath(res.Path, opts.OutDir)
	if err := writeOutput(res.OutPath, res.Output); err != nil {
		res.Err = err
	}
	return nil
}

func paceRequests(ctx context.Context, lastRequest *time.Time, now func() time.Time) error {
	if lastRequest.IsZero() {
		*lastRequest = now()
		return nil
	}
	wait := minRequestGap - now().Sub(*lastRequest)
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	*lastRequest = now()
	return nil
}

// runFatal reports whether an error should stop the whole batch.
// Credential and rate-limit failures will repeat for every file.
func runFatal(err error) error {
	switch groq.KindOf(err) {
	case groq.KindInvalidCredential, groq.KindRateLimited:
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

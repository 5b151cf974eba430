package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/oss-plugin-hub/pluginhub/pkg/httputil"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations"
	"github.com/oss-plugin-hub/pluginhub/pkg/store"
)

// Completer produces a model completion for a prompt. Satisfied by
// groq.Client; tests substitute a canned implementation.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Runner drives the classification batch. Unlike the registry pipelines it
// retries rate limiting with backoff instead of aborting: completion quota
// recovers within the backoff window, registry quota does not.
type Runner struct {
	Model    Completer
	Logger   *log.Logger
	DataDir  string
	Sleep    time.Duration
	Attempts int
	Backoff  time.Duration
}

// Output paths relative to the data dir.
const (
	outputFile   = "classifications_groq.json"
	progressFile = "classifications_progress.json"
	missingFile  = "classifications_missing.json"
	logFile      = "classify.log"
)

// Summary is the final tally of a classification run.
type Summary struct {
	Classified int
	Skipped    int
	Failed     int
}

// Run classifies every item not yet recorded as processed. After each item
// it rewrites the results array, the progress document and the missing-ids
// document, and appends to the run log, so the run can be killed and
// resumed at any point.
func (r *Runner) Run(ctx context.Context, items []Item) (Summary, error) {
	var summary Summary

	attempts := r.Attempts
	if attempts <= 0 {
		attempts = 5
	}
	backoff := r.Backoff
	if backoff <= 0 {
		backoff = 2 * time.Second
	}

	results, err := r.loadResults()
	if err != nil {
		return summary, err
	}
	progress, err := store.LoadProgress(filepath.Join(r.DataDir, progressFile))
	if err != nil {
		return summary, err
	}
	progress.Total = len(items)

	for index, item := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		id := item.ID()
		if progress.Done(id) {
			summary.Skipped++
			continue
		}

		input := BuildInput(item, filepath.Join(r.DataDir, "readmes"))
		prompt, err := BuildPrompt(input)
		if err != nil {
			return summary, err
		}

		r.logLine(fmt.Sprintf("start item=%s index=%d/%d", id, index+1, len(items)))

		var result Result
		attempt := 0
		err = httputil.Retry(ctx, attempts, backoff, func() error {
			attempt++
			res, cerr := r.classifyOnce(ctx, prompt)
			if cerr != nil {
				r.logLine(fmt.Sprintf("error item=%s attempt=%d detail=%v", id, attempt, cerr))
				return cerr
			}
			result = res
			return nil
		})

		if err != nil {
			progress.MarkFailed(id)
			summary.Failed++
			r.logLine(fmt.Sprintf("failed item=%s index=%d/%d detail=%v", id, index+1, len(items), err))
		} else {
			result.Platform = input.Platform
			result.Repo = input.Repo
			result.Name = input.Name
			result.ReadmeMissing = input.Readme == ""
			results = append(results, result)
			progress.MarkProcessed(id)
			summary.Classified++
			r.logLine(fmt.Sprintf("done item=%s index=%d/%d", id, index+1, len(items)))

			if err := r.saveResults(results); err != nil {
				return summary, err
			}
		}

		if err := progress.Save(); err != nil {
			return summary, err
		}
		if err := r.saveMissing(items, progress); err != nil {
			return summary, err
		}
		if r.Sleep > 0 {
			time.Sleep(r.Sleep)
		}
	}

	r.Logger.Info("classification complete",
		"classified", summary.Classified,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}

// classifyOnce performs one completion attempt and parses the response.
// Rate limiting and malformed responses are wrapped retryable here: both
// are transient for this API, and the retry loop owns the attempt cap.
func (r *Runner) classifyOnce(ctx context.Context, prompt string) (Result, error) {
	text, err := r.Model.Complete(ctx, prompt)
	if errors.Is(err, integrations.ErrRateLimited) {
		return Result{}, httputil.Retryable(err)
	}
	if err != nil {
		return Result{}, err
	}
	result, err := ParseResponse(text)
	if err != nil {
		return Result{}, httputil.Retryable(fmt.Errorf("parse response: %w", err))
	}
	return result, nil
}

func (r *Runner) loadResults() ([]Result, error) {
	data, err := os.ReadFile(filepath.Join(r.DataDir, outputFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) saveResults(results []Result) error {
	return writeJSON(filepath.Join(r.DataDir, outputFile), results)
}

func (r *Runner) saveMissing(items []Item, progress *store.Progress) error {
	missing := []string{}
	for _, item := range items {
		if !progress.Done(item.ID()) {
			missing = append(missing, item.ID())
		}
	}
	sort.Strings(missing)
	return writeJSON(filepath.Join(r.DataDir, missingFile), missing)
}

// logLine writes one line to both the console logger and the append-only
// run log artifact.
func (r *Runner) logLine(message string) {
	r.Logger.Info(message)

	path := filepath.Join(r.DataDir, logFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	stamp := time.Now().UTC().Format("2006-01-02T15:04:05Z")
	fmt.Fprintf(f, "[%s] %s\n", stamp, message)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

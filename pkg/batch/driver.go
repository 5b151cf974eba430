// Package batch runs a pipeline's work list sequentially with checkpointed
// resume. One item failing never aborts the run; only rate limiting can,
// and only when the pipeline opts in.
package batch

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/oss-plugin-hub/pluginhub/pkg/integrations"
	"github.com/oss-plugin-hub/pluginhub/pkg/store"
)

// ProcessFunc performs the external work for one item and returns the
// fields to merge into its record. Returning integrations.ErrNotFound marks
// the item no-data rather than failed.
type ProcessFunc func(ctx context.Context, id string) (map[string]any, error)

// Summary is the final tally of one run.
type Summary struct {
	Updated int
	Skipped int
	Failed  int
	NoData  int
}

// Driver walks a work list one item at a time, persisting the cache
// document and the progress document after every item so a killed run
// resumes where it stopped.
type Driver struct {
	Store    store.Store
	Progress *store.Progress
	Logger   *log.Logger

	// Sleep is the politeness delay applied after every processed item,
	// regardless of outcome. Not interruptible mid-sleep.
	Sleep time.Duration

	// AbortOnRateLimit stops the whole run on integrations.ErrRateLimited
	// instead of recording an item failure, preserving remaining quota.
	AbortOnRateLimit bool
}

// Run processes ids in order. Items already recorded as processed are
// skipped without any external call. The returned error is non-nil only
// when the run as a whole stopped early (context cancellation or an
// opted-in rate-limit abort); per-item failures land in the summary.
func (d *Driver) Run(ctx context.Context, ids []string, process ProcessFunc) (Summary, error) {
	var summary Summary

	doc, err := d.Store.Load(ctx)
	if err != nil {
		return summary, err
	}
	d.Progress.Total = len(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if d.Progress.Done(id) {
			summary.Skipped++
			continue
		}

		fields, err := process(ctx, id)
		switch {
		case err == nil:
			rec := doc[id]
			if rec == nil {
				rec = store.Record{}
			}
			rec.Merge(fields)
			rec.SetStatus(store.StatusOK)
			doc[id] = rec
			d.Progress.MarkProcessed(id)
			summary.Updated++
			d.Logger.Info("updated", "id", id)

		case errors.Is(err, integrations.ErrNotFound):
			rec := doc[id]
			if rec == nil {
				rec = store.Record{}
			}
			rec.SetStatus(store.StatusNoData)
			doc[id] = rec
			d.Progress.MarkProcessed(id)
			summary.NoData++
			d.Logger.Info("no data", "id", id)

		case errors.Is(err, integrations.ErrRateLimited) && d.AbortOnRateLimit:
			d.Logger.Error("rate limited, aborting run", "id", id)
			if saveErr := d.checkpoint(ctx, doc); saveErr != nil {
				return summary, saveErr
			}
			return summary, err

		default:
			rec := doc[id]
			if rec == nil {
				rec = store.Record{}
			}
			rec.SetStatus(store.StatusError)
			rec["error"] = err.Error()
			doc[id] = rec
			d.Progress.MarkFailed(id)
			summary.Failed++
			d.Logger.Warn("failed", "id", id, "err", err)
		}

		if err := d.checkpoint(ctx, doc); err != nil {
			return summary, err
		}
		if d.Sleep > 0 {
			time.Sleep(d.Sleep)
		}
	}

	d.Logger.Info("run complete",
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"no_data", summary.NoData,
	)
	return summary, nil
}

func (d *Driver) checkpoint(ctx context.Context, doc store.Document) error {
	if err := d.Store.Save(ctx, doc); err != nil {
		return err
	}
	return d.Progress.Save()
}

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
)

// Progress tracks which composite keys a run has already handled. It is
// persisted after every item, so killing a run and restarting it picks up
// where the previous run stopped.
type Progress struct {
	RunID        string   `json:"run_id"`
	ProcessedIDs []string `json:"processed_ids"`
	FailedIDs    []string `json:"failed_ids"`
	Total        int      `json:"total"`

	path      string
	processed map[string]struct{}
	failed    map[string]struct{}
}

// LoadProgress reads the progress document at path, or starts a fresh one
// with a new run id when the file does not exist.
func LoadProgress(path string) (*Progress, error) {
	p := &Progress{
		RunID:     uuid.NewString(),
		path:      path,
		processed: map[string]struct{}{},
		failed:    map[string]struct{}{},
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	for _, id := range p.ProcessedIDs {
		p.processed[id] = struct{}{}
	}
	for _, id := range p.FailedIDs {
		p.failed[id] = struct{}{}
	}
	return p, nil
}

// Done reports whether id completed successfully in this or a prior run.
func (p *Progress) Done(id string) bool {
	_, ok := p.processed[id]
	return ok
}

// MarkProcessed records a successful attempt for id. A previously failed id
// that now succeeds leaves the failed set: failed only ever holds keys whose
// most recent attempt did not succeed.
func (p *Progress) MarkProcessed(id string) {
	if _, ok := p.processed[id]; !ok {
		p.processed[id] = struct{}{}
		p.ProcessedIDs = append(p.ProcessedIDs, id)
	}
	p.unfail(id)
}

// MarkFailed records a failed attempt for id.
func (p *Progress) MarkFailed(id string) {
	if _, ok := p.failed[id]; !ok {
		p.failed[id] = struct{}{}
		p.FailedIDs = append(p.FailedIDs, id)
	}
}

func (p *Progress) unfail(id string) {
	if _, ok := p.failed[id]; !ok {
		return
	}
	delete(p.failed, id)
	p.FailedIDs = slices.DeleteFunc(p.FailedIDs, func(s string) bool { return s == id })
}

// Processed returns how many ids completed successfully.
func (p *Progress) Processed() int { return len(p.processed) }

// Failed returns how many ids are currently failed.
func (p *Progress) Failed() int { return len(p.failed) }

// Save writes the progress document to its path.
func (p *Progress) Save() error {
	if p.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

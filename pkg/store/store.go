// Package store persists the two documents every pipeline run owns: the
// cache document (composite key -> enrichment record) and the progress
// document (processed/failed id sets).
//
// Both are written in full after every item, so an interrupted run resumes
// from its last completed item. There is no partial-write protection beyond
// that; a crash mid-write can corrupt the file, which is an accepted risk
// for a single-writer batch tool.
package store

import "context"

// Status values a record can carry. The status field always reflects the
// most recent attempt for that key.
const (
	StatusOK     = "ok"
	StatusError  = "error"
	StatusNoData = "no-data"
)

// Document is the full cache document: composite key -> record.
type Document map[string]Record

// Store persists a cache document. Load returns an empty document when
// nothing has been persisted yet; Save overwrites the whole document.
type Store interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
}

// Record is one enrichment result. Payload fields vary per pipeline
// (publish timestamps, dependency sets, vulnerability summaries, median
// turnaround) so records stay schemaless; typed values are produced and
// consumed at the pipeline boundaries.
type Record map[string]any

// Merge copies fields into the record with set-if-absent semantics: a field
// the record already has keeps its value even when fields carries a
// different one. The "status" field is the single exception and is always
// overwritten, so a record can gain data across passes while status tracks
// the latest attempt.
func (r Record) Merge(fields map[string]any) {
	for k, v := range fields {
		if k == "status" {
			r[k] = v
			continue
		}
		if _, exists := r[k]; !exists {
			r[k] = v
		}
	}
}

// Status returns the record's status field, or "" when unset.
func (r Record) Status() string {
	s, _ := r["status"].(string)
	return s
}

// SetStatus overwrites the record's status field.
func (r Record) SetStatus(status string) {
	r["status"] = status
}

// String returns the named field if it holds a string.
func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

package structured

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/hexstorm/internal/engine/cursor"
)

// Record is a length-prefixed region of the buffer. Span covers the
// prefix and the payload.
type Record struct {
	Span  cursor.Span
	Codec Codec
	dirty bool
}

// Fix is a prefix rewrite: replace Remove bytes at Offset with Insert.
type Fix struct {
	Offset int
	Remove int
	Insert []byte
}

// ReadFunc returns up to length bytes at offset.
type ReadFunc func(offset, length int) []byte

// Registry tracks structured records and keeps their spans in step with
// edits. It implements tracking.Observer.
type Registry struct {
	records []*Record
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register decodes the prefix at start and adds a record spanning the
// prefix and the payload it announces.
func (r *Registry) Register(start int, codec Codec, read ReadFunc) (Record, error) {
	header := read(start, maxVarIntWidth)
	length, width, err := codec.Decode(header)
	if err != nil {
		return Record{}, fmt.Errorf("register %s record at %d: %w", codec.Name(), start, err)
	}
	span := cursor.NewSpan(start, width+int(length))
	if got := len(read(start, span.Len())); got < span.Len() {
		return Record{}, fmt.Errorf("register %s record at %d: payload of %d bytes runs past end: %w",
			codec.Name(), start, length, ErrPrefixTruncated)
	}
	for _, existing := range r.records {
		if existing.Span.Overlaps(span) {
			return Record{}, ErrOverlap
		}
	}

	rec := &Record{Span: span, Codec: codec}
	r.records = append(r.records, rec)
	sort.Slice(r.records, func(i, j int) bool {
		return r.records[i].Span.Start < r.records[j].Span.Start
	})
	return *rec, nil
}

// Unregister drops the record containing offset.
func (r *Registry) Unregister(offset int) bool {
	for i, rec := range r.records {
		if rec.Span.Contains(offset) {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true
		}
	}
	return false
}

// At returns the record containing offset.
func (r *Registry) At(offset int) (Record, bool) {
	for _, rec := range r.records {
		if rec.Span.Contains(offset) {
			return *rec, true
		}
	}
	return Record{}, false
}

// Records returns the records ordered by start offset.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	for i, rec := range r.records {
		out[i] = *rec
	}
	return out
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// EditApplied moves and resizes records after an edit. Records the edit
// touched are marked for a prefix check; records that shrink to nothing
// are dropped.
func (r *Registry) EditApplied(edit cursor.Edit) {
	kept := r.records[:0]
	for _, rec := range r.records {
		touched := edit.Offset >= rec.Span.Start && edit.Offset < rec.Span.End
		if edit.Offset < rec.Span.Start && edit.Offset+edit.Removed > rec.Span.Start {
			touched = true
		}
		rec.Span = cursor.TransformSpan(rec.Span, edit)
		if rec.Span.IsEmpty() {
			continue
		}
		if touched {
			rec.dirty = true
		}
		kept = append(kept, rec)
	}
	r.records = kept
}

// Fixes returns the prefix rewrites needed to make every touched record's
// prefix agree with its payload length, last record first so the offsets
// stay valid while they are applied in order. Records whose prefix can
// no longer be read, or whose new length does not fit, are dropped and
// reported in the error.
func (r *Registry) Fixes(read ReadFunc) ([]Fix, error) {
	var fixes []Fix
	var errs []error

	kept := r.records[:0]
	for _, rec := range r.records {
		if !rec.dirty {
			kept = append(kept, rec)
			continue
		}
		rec.dirty = false

		header := read(rec.Span.Start, min(rec.Span.Len(), maxVarIntWidth))
		declared, width, err := rec.Codec.Decode(header)
		if err != nil || width > rec.Span.Len() {
			errs = append(errs, fmt.Errorf("record at %d: %w", rec.Span.Start, ErrPrefixTruncated))
			continue
		}
		actual := uint64(rec.Span.Len() - width)
		if declared == actual {
			kept = append(kept, rec)
			continue
		}
		prefix, err := rec.Codec.Encode(actual)
		if err != nil {
			errs = append(errs, fmt.Errorf("record at %d: %w", rec.Span.Start, err))
			continue
		}
		if !bytes.Equal(prefix, header[:width]) {
			fixes = append(fixes, Fix{Offset: rec.Span.Start, Remove: width, Insert: prefix})
		}
		kept = append(kept, rec)
	}
	r.records = kept

	sort.Slice(fixes, func(i, j int) bool { return fixes[i].Offset > fixes[j].Offset })
	return fixes, errors.Join(errs...)
}

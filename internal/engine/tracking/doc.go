// Package tracking records where the buffer changed.
//
// Changes is a drain-once set of touched offsets. The renderer fetches it
// once per frame: an entry with LengthChanged set means every row from
// that offset on must be redrawn, otherwise only the row holding the
// offset is stale.
//
// Notifier fans out edit descriptions to observers, such as the
// structured record registry, after each mutation completes. Observers
// run synchronously on the caller's goroutine and must not mutate the
// editor from inside the callback.
package tracking

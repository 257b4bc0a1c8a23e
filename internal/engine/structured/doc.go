// Package structured keeps length-prefixed records consistent while the
// buffer is edited.
//
// A record is a prefix holding a payload length followed by the payload.
// Once registered, the Registry follows edits through the tracking
// notifier: records after an edit move, records containing it grow or
// shrink. Fixes then lists the prefix rewrites that make each touched
// record's prefix match its new payload length. The editor applies them
// as ordinary undoable edits.
//
// Three prefix codecs are provided: BigEndian and LittleEndian with a
// fixed width, and VarInt with seven bits per byte.
package structured

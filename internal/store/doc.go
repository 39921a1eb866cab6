// Package store provides the persistent ordered key-value container behind
// reclog records.
//
// A location names one database. Within it, records live in named
// containers (the default is "main"); each container is an ordered mapping
// from key to opaque value.
//
// # Backends
//
//   - SQLite (plain path, "sqlite://path" or ":memory:"): durable, one file
//   - Memory ("mem://name"): in-process btree, gone when the process exits
//
// # Guarantees
//
// Keys: any non-empty string, stored and compared byte for byte. Two
// canonically equivalent spellings are two keys. The empty key is rejected
// with ErrInvalidKey; paging resumes strictly after the previous page's last
// key, starting from "", so an empty key could never be listed.
//
// Ordering: keys are compared byte-wise. SQLite columns use COLLATE BINARY
// so both backends agree on order.
//
// Atomicity: every mutation runs in its own transaction and is committed
// before the call returns. There is no batching.
//
// Laziness: All returns an iter.Seq2 that reads the container in key-ordered
// pages. Nothing is held open between pages, so the caller may mutate the
// container while ranging over it.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store

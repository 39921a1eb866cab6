// Package recorder implements flat key/value record keeping on top of the
// store package.
//
// Recorder opens its store lazily and commits every mutation before
// returning. Logger decorates any RecordStore with time-keyed logging and
// confirmed deletion of the entry with the greatest key. Menu is the
// interactive front end offering add, list, search, edit and delete.
//
// "Last" always means greatest key, never most recently written. Keys
// produced by TimeKey sort chronologically, so for entries written with
// Logger.Log the two coincide.
package recorder

// Package exporter writes rendered artifacts to disk.
//
// Every output is replaced, never appended: an existing file at the target
// path is deleted (and the deletion logged) before the new content is
// written. A write that fails part way removes the partial file, so a failed
// render leaves no file behind.
package exporter

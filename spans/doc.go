// Package spans keeps the set of in-flight spans between StartTrace and
// EndTrace and produces finalized records for export.
package spans

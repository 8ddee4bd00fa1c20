// Package ids generates W3C-compatible trace and span identifiers.
//
// Trace ids are 32 lowercase hex characters built from four 32-bit draws;
// span ids are 16 characters built from two. The random source is pluggable
// so tests can use a seeded generator:
//
//	gen := ids.NewGeneratorWithSource(ids.NewSeededSource(1, 2))
//	traceID := gen.NewTraceID() // e.g. "3f1c09a2..."
//	spanID := gen.NewSpanID()
//
// The generator holds no mutable state of its own; concurrency safety follows
// from the Source (the default runtime source is safe for concurrent use).
package ids

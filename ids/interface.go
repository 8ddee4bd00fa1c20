package ids

// Generator produces trace and span identifiers in their canonical hex form.
//
// This interface is implemented by the concrete *RandomGenerator type.
type Generator interface {
	// NewTraceID returns a 128-bit trace id as 32 lowercase hex characters.
	NewTraceID() string

	// NewSpanID returns a 64-bit span id as 16 lowercase hex characters.
	NewSpanID() string
}

// Source supplies independent 32-bit random values.
type Source interface {
	Uint32() uint32
}

package spans

import (
	"context"
	"strings"
	"time"
)

// EndBias is added to the end timestamp of every finalized span so that very
// short spans never report a zero or negative duration on coarse device clocks.
const EndBias = 10 * time.Millisecond

// Kind is the OTLP span kind.
type Kind int

const (
	KindInternal Kind = 1
	KindServer   Kind = 2
	KindClient   Kind = 3
	KindProducer Kind = 4
	KindConsumer Kind = 5
)

var kindNames = map[string]Kind{
	"INTERNAL": KindInternal,
	"SERVER":   KindServer,
	"CLIENT":   KindClient,
	"PRODUCER": KindProducer,
	"CONSUMER": KindConsumer,
}

// ParseKind maps a kind name to its numeric value, ignoring case.
// Unknown names map to KindInternal.
func ParseKind(name string) Kind {
	if k, ok := kindNames[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return k
	}
	return KindInternal
}

// Valid reports whether k is one of the five OTLP span kinds.
func (k Kind) Valid() bool {
	return k >= KindInternal && k <= KindConsumer
}

// String returns the upper-case kind name.
func (k Kind) String() string {
	for name, v := range kindNames {
		if v == k {
			return name
		}
	}
	return "INTERNAL"
}

// Logger is the subset of logger.Logger used by the registry.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

package observability

import (
	"io"
	"log/slog"
)

// NoOpLogger discards everything. Intended for tests.
var NoOpLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

package testutil

import (
	"bytes"
	"io"

	"github.com/dtroode/envelope-relay/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return logger.New(0, logger.WithOutput(io.Discard))
}

// MakeBufferLogger returns a debug-level logger writing to buf.
func MakeBufferLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.New(-4, logger.WithOutput(buf))
}

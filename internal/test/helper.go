package test

import (
	"io"
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DummyLogger returns a debug level logger writing message-only lines to w.
// Standard library log output is redirected to it as well. With -v the lines
// are also copied to stderr.
func DummyLogger(w io.Writer) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "message",
	})

	syncers := []zapcore.WriteSyncer{zapcore.AddSync(w)}
	if testing.Verbose() {
		syncers = append(syncers, zapcore.Lock(os.Stderr))
	}

	l := zap.New(zapcore.NewCore(encoder, zap.CombineWriteSyncers(syncers...), zapcore.DebugLevel))
	zap.RedirectStdLog(l)

	return l
}

// File: control/logging.go
// License: Apache-2.0
//
// Logger construction. NewHostLogger builds a zap logger whose core
// forwards entries into the host's error-reporting channel, so a
// contained task panic surfaces as one line where the host's operator
// expects diagnostics.

package control

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hostloop/hostloop/api"
)

// NewLogger returns a logger for standalone use: development encoding
// when debug is set, production encoding otherwise.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewHostLogger returns a logger that writes every enabled entry to
// the host's error channel. lvl gates what reaches the host; zap's
// ErrorLevel matches the one-diagnostic-line contract for panics.
func NewHostLogger(sink api.ErrorSink, lvl zapcore.LevelEnabler) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "" // the host timestamps its own log lines
	enc := zapcore.NewConsoleEncoder(encCfg)
	return zap.New(&hostCore{LevelEnabler: lvl, enc: enc, sink: sink})
}

// hostCore is a zapcore.Core that delivers encoded entries to an
// api.ErrorSink.
type hostCore struct {
	zapcore.LevelEnabler
	enc  zapcore.Encoder
	sink api.ErrorSink
}

func (c *hostCore) With(fields []zapcore.Field) zapcore.Core {
	clone := c.enc.Clone()
	for i := range fields {
		fields[i].AddTo(clone)
	}
	return &hostCore{LevelEnabler: c.LevelEnabler, enc: clone, sink: c.sink}
}

func (c *hostCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *hostCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	c.sink.ReportError(strings.TrimRight(buf.String(), "\n"))
	buf.Free()
	return nil
}

func (c *hostCore) Sync() error { return nil }

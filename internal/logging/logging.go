// Package logging builds the zap loggers handed to worlds and systems.
package logging

import (
	"os"

	"github.com/samber/oops"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings accepted by New.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// New builds a production logger writing to stderr.
func New(level, encoding string) (*zap.Logger, error) {
	return Build(level, encoding, zapcore.Lock(os.Stderr))
}

// Build is New with an explicit sink.
func Build(level, encoding string, ws zapcore.WriteSyncer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("log.level", level).Wrap(err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch encoding {
	case EncodingJSON, "":
		enc = zapcore.NewJSONEncoder(encCfg)
	case EncodingConsole:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, oops.Code("CONFIG_INVALID").With("log.encoding", encoding).Errorf("unknown log encoding %q", encoding)
	}

	core := zapcore.NewCore(enc, ws, zap.NewAtomicLevelAt(lvl))
	return zap.New(core, zap.ErrorOutput(ws)), nil
}

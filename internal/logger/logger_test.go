package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewParsesLevel(t *testing.T) {
	l, err := New("debug")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug level should be enabled")
	}

	// 非法级别回退为 info
	l, err = New("loud")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug should be disabled on fallback level")
	}
	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be enabled on fallback level")
	}
}

func TestInitReplacesGlobals(t *testing.T) {
	before := zap.L()
	flush, err := Init("warn")
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if zap.L() == before {
		t.Fatalf("global logger not replaced")
	}
	flush()
	if zap.L() != before {
		t.Fatalf("global logger not restored after flush")
	}
}

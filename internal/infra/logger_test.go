package infra

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"

	"freight/internal/config"
)

func TestNewLogger_LevelAndFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "freight.log")
	l := NewLogger(config.LogConfig{Level: "warn", Format: "json", File: file})
	defer l.Sync()

	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestNewLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	l := NewLogger(config.LogConfig{Level: "chatty"})
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled for unknown level")
	}
	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be enabled for unknown level")
	}
}

func TestNewRedis_EmptyAddr(t *testing.T) {
	if NewRedis("") != nil {
		t.Fatal("expected nil client for empty address")
	}
}

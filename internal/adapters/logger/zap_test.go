package logger

import (
	"context"
	"testing"

	"github.com/athebyme/vendor-product-service/pkg/auth"
	"github.com/athebyme/vendor-product-service/pkg/interfaces"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &ZapLogger{
		logger: zap.New(core).Sugar(),
		level:  zap.NewAtomicLevelAt(zapcore.DebugLevel),
	}, logs
}

func TestGetLoggerLevel(t *testing.T) {
	assert.Equal(t, interfaces.DebugLevel, GetLoggerLevel("debug"))
	assert.Equal(t, interfaces.WarnLevel, GetLoggerLevel("warn"))
	assert.Equal(t, interfaces.InfoLevel, GetLoggerLevel("unknown"))
}

func TestZapLogger_ConvertsLogFields(t *testing.T) {
	l, logs := newObservedLogger()

	l.Info("Продукт создан", interfaces.LogField{Key: "product_id", Value: "P1"})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "Продукт создан", entries[0].Message)
		assert.Equal(t, "P1", entries[0].ContextMap()["product_id"])
	}
}

func TestZapLogger_ContextFields(t *testing.T) {
	l, logs := newObservedLogger()
	ctx := auth.WithVendorID(context.Background(), "V1")

	l.WarnWithContext(ctx, "Удаление не подтверждено")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "V1", entries[0].ContextMap()["vendor_id"])
	}
}

func TestZapLogger_WithVendor(t *testing.T) {
	l, logs := newObservedLogger()

	l.WithVendor("V2").Error("Ошибка")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "V2", entries[0].ContextMap()["vendor_id"])
	}
}

func TestZapLogger_SetLevel(t *testing.T) {
	l, _ := newObservedLogger()

	l.SetLevel(interfaces.ErrorLevel)
	assert.Equal(t, interfaces.ErrorLevel, l.GetLevel())
}

package benchmark

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hollowthesilver/asynclogger/logger"
)

// Every framework writes to io.Discard so only the pipeline cost is
// measured. The comparison is deliberately unfair in both directions:
// zap and slog resolve no caller info here, while asynclogger carries
// its sanitizer and caller lookup on every call.

func newAsyncLogger(b *testing.B) *logger.AsyncLogger {
	b.Helper()
	l, err := logger.New(logger.Config{
		Name:          "bench",
		ColorEnabled:  boolPtr(false),
		ConsoleWriter: io.Discard,
		FlushInterval: time.Hour,
	})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = l.Shutdown() })
	return l
}

func newZapLogger() *zap.Logger {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zap.DebugLevel)
	return zap.New(core)
}

func newSlogLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func BenchmarkCompetitive_InfoNoFields(b *testing.B) {
	b.Run("asynclogger", func(b *testing.B) {
		l := newAsyncLogger(b)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})
}

func BenchmarkCompetitive_InfoWithFields(b *testing.B) {
	b.Run("asynclogger", func(b *testing.B) {
		l := newAsyncLogger(b)
		extras := logger.Extras{"user_id": 12345, "method": "GET", "status": 200}
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("request handled", extras)
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("request handled",
				zap.Int("user_id", 12345),
				zap.String("method", "GET"),
				zap.Int("status", 200),
			)
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("request handled",
				slog.Int("user_id", 12345),
				slog.String("method", "GET"),
				slog.Int("status", 200),
			)
		}
	})
}

func BenchmarkCompetitive_BelowThreshold(b *testing.B) {
	b.Run("asynclogger", func(b *testing.B) {
		l := newAsyncLogger(b)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("suppressed")
		}
	})

	b.Run("zap", func(b *testing.B) {
		enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		core := zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zap.ErrorLevel)
		l := zap.New(core)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("suppressed")
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("suppressed")
		}
	})
}

func BenchmarkCompetitive_Parallel(b *testing.B) {
	b.Run("asynclogger", func(b *testing.B) {
		l := newAsyncLogger(b)
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("info message")
			}
		})
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("info message")
			}
		})
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger()
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("info message")
			}
		})
	})
}

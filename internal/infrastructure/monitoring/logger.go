package monitoring

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/finsmart/finsmart/internal/config"
	"github.com/finsmart/finsmart/pkg/constants"
	"github.com/finsmart/finsmart/pkg/logger"
)

type zapLogger struct {
	l *zap.Logger
}

// NewZapLogger builds the production logger: JSON encoding, ISO8601 timestamps,
// level from config, stack traces on error.
func NewZapLogger(cfg *config.LogConfig) (logger.Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)

	return &zapLogger{zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))}, nil
}

func (z *zapLogger) Debug(ctx context.Context, msg string, fields ...logger.Field) {
	z.l.Debug(msg, z.convert(ctx, fields)...)
}

func (z *zapLogger) Info(ctx context.Context, msg string, fields ...logger.Field) {
	z.l.Info(msg, z.convert(ctx, fields)...)
}

func (z *zapLogger) Warn(ctx context.Context, msg string, fields ...logger.Field) {
	z.l.Warn(msg, z.convert(ctx, fields)...)
}

func (z *zapLogger) Error(ctx context.Context, msg string, err error, fields ...logger.Field) {
	zapFields := z.convert(ctx, fields)
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}
	z.l.Error(msg, zapFields...)
}

func (z *zapLogger) Fatal(ctx context.Context, msg string, err error, fields ...logger.Field) {
	zapFields := z.convert(ctx, fields)
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}
	z.l.Fatal(msg, zapFields...)
}

func (z *zapLogger) WithFields(fields ...logger.Field) logger.Logger {
	return &zapLogger{z.l.With(z.convert(context.Background(), fields)...)}
}

func (z *zapLogger) WithComponent(component string) logger.Logger {
	return &zapLogger{z.l.With(zap.String("component", component))}
}

func (z *zapLogger) convert(ctx context.Context, fields []logger.Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields)+1)
	if ctx != nil {
		if requestID, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok && requestID != "" {
			zapFields = append(zapFields, zap.String("request_id", requestID))
		}
	}
	for _, f := range fields {
		zapFields = append(zapFields, zap.Any(f.Key, f.Value))
	}
	return zapFields
}

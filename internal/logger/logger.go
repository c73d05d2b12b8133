package logger

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5/middleware"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int32(l))
	}
}

var level atomic.Int32

func init() {
	level.Store(int32(LevelInfo))
}

func SetLevel(l Level) {
	level.Store(int32(l))
}

func GetLevel() Level {
	return Level(level.Load())
}

// ParseLevel разбирает уровень из конфига (debug|info|warn|error)
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func Debug(ctx context.Context, msg string, fields ...any) {
	output(ctx, LevelDebug, msg, fields)
}

func Info(ctx context.Context, msg string, fields ...any) {
	output(ctx, LevelInfo, msg, fields)
}

func Warn(ctx context.Context, msg string, fields ...any) {
	output(ctx, LevelWarn, msg, fields)
}

// Error пишет "msg: err", если err не nil
func Error(ctx context.Context, err error, msg string, fields ...any) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	output(ctx, LevelError, msg, fields)
}

func output(ctx context.Context, l Level, msg string, fields []any) {
	if l < GetLevel() {
		return
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(l.String())
	b.WriteString("] ")
	b.WriteString(msg)

	for i := 0; i < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		var value any = "(MISSING)"
		if i+1 < len(fields) {
			value = fields[i+1]
		}
		fmt.Fprintf(&b, " %s=%v", key, value)
	}

	if ctx != nil {
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			b.WriteString(" request_id=")
			b.WriteString(reqID)
		}
	}

	log.Print(b.String())
}

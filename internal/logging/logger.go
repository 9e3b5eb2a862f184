// Package logging is a small structured logger for the wgips surfaces. The
// calculation core never logs; this exists so the CLI and terminal UI can
// report persistence and lifecycle problems without losing structure.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel maps a level name to a Level; the boolean reports whether the
// name was recognized (unknown names fall back to info).
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// Field is one key/value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

type Options struct {
	Out   io.Writer // defaults to os.Stderr
	Level Level
	JSON  bool
	Now   func() time.Time // defaults to time.Now
}

// Logger writes leveled key=value (or JSON) lines. All methods are safe for
// concurrent use; loggers derived via With share the writer lock.
type Logger struct {
	out   io.Writer
	level Level
	json  bool
	now   func() time.Time
	base  []Field
	mu    *sync.Mutex
}

func New(opts Options) *Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Logger{
		out:   out,
		level: opts.Level,
		json:  opts.JSON,
		now:   now,
		mu:    &sync.Mutex{},
	}
}

// With returns a logger that attaches fields to every line it writes.
func (l *Logger) With(fields ...Field) *Logger {
	if l == nil {
		return New(Options{})
	}

	child := *l
	child.base = append(append([]Field{}, l.base...), fields...)
	return &child
}

func (l *Logger) Debug(msg string, fields ...Field) { l.write(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.write(LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.write(LevelWarn, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.write(LevelError, msg, fields) }

func (l *Logger) write(level Level, msg string, fields []Field) {
	if l == nil || level < l.level {
		return
	}

	ts := l.now().UTC().Format(time.RFC3339Nano)

	all := make([]Field, 0, len(l.base)+len(fields))
	all = append(all, l.base...)
	all = append(all, fields...)

	var line []byte
	if l.json {
		m := make(map[string]any, 3+len(all))
		m["ts"] = ts
		m["level"] = level.String()
		m["msg"] = msg
		for _, f := range all {
			if f.Key == "" {
				continue
			}
			if err, ok := f.Value.(error); ok {
				m[f.Key] = err.Error()
				continue
			}
			m[f.Key] = f.Value
		}
		b, err := json.Marshal(m)
		if err != nil {
			return
		}
		line = append(b, '\n')
	} else {
		var sb strings.Builder
		sb.WriteString(ts)
		sb.WriteString(" level=")
		sb.WriteString(level.String())
		sb.WriteString(" msg=")
		sb.WriteString(strconv.Quote(msg))
		for _, f := range all {
			if f.Key == "" {
				continue
			}
			sb.WriteString(" ")
			sb.WriteString(f.Key)
			sb.WriteString("=")
			sb.WriteString(textValue(f.Value))
		}
		sb.WriteString("\n")
		line = []byte(sb.String())
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(line)
}

func textValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case error:
		return strconv.Quote(x.Error())
	case string:
		return strconv.Quote(x)
	case time.Time:
		return strconv.Quote(x.UTC().Format(time.RFC3339Nano))
	default:
		s := fmt.Sprint(x)
		if strings.ContainsAny(s, " \t\n\r") {
			return strconv.Quote(s)
		}
		return s
	}
}

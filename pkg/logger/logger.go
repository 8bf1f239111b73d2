package logger

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger writes console-encoded records into an in-memory buffer (for the
// demo log panel) and, optionally, into an additional writer.
type ZapLogger struct {
	log *zap.Logger

	mu     *sync.Mutex
	logBuf *bytes.Buffer
}

// New returns a debug-level logger that only writes into its own buffer.
func New() *ZapLogger {
	return newLogger(nil, zapcore.DebugLevel)
}

// NewWithWriter tees records at or above level into w as well as the buffer.
func NewWithWriter(w io.Writer, level zapcore.Level) *ZapLogger {
	return newLogger(w, level)
}

// Nop discards everything.
func Nop() *ZapLogger {
	return &ZapLogger{
		log:    zap.NewNop(),
		mu:     &sync.Mutex{},
		logBuf: &bytes.Buffer{},
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	return zapcore.ParseLevel(s)
}

func newLogger(w io.Writer, level zapcore.Level) *ZapLogger {
	mu := &sync.Mutex{}
	logBuf := &bytes.Buffer{}

	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	encoder := zapcore.NewConsoleEncoder(config)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(&lockedBuffer{mu: mu, buf: logBuf, limit: maxLogBytes}), level),
	}
	if w != nil {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))

	return &ZapLogger{
		log:    logger,
		mu:     mu,
		logBuf: logBuf,
	}
}

// maxLogBytes caps the log panel; older lines are dropped first.
const maxLogBytes = 64 << 10

type lockedBuffer struct {
	mu    *sync.Mutex
	buf   *bytes.Buffer
	limit int
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := b.buf.Write(p)
	if over := b.buf.Len() - b.limit; b.limit > 0 && over > 0 {
		// cut at a line boundary so no record is left half shown
		if i := bytes.IndexByte(b.buf.Bytes()[over:], '\n'); i >= 0 {
			b.buf.Next(over + i + 1)
		} else {
			b.buf.Reset()
		}
	}
	return n, err
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m" // Cyan
	case zapcore.InfoLevel:
		colorCode = "\033[32m" // Green
	case zapcore.WarnLevel:
		colorCode = "\033[33m" // Yellow
	case zapcore.ErrorLevel:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m" // Default
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

var ansiPattern = regexp.MustCompile(`\033\[(\d+)m`)

// Converts ANSI color codes to HTML span with inline styles
func ansiToHTML(input string) string {
	var result strings.Builder
	var lastIndex int
	var open bool

	result.WriteString("<pre>")

	for _, match := range ansiPattern.FindAllStringIndex(input, -1) {
		start := match[0]
		end := match[1]

		if start > lastIndex {
			result.WriteString(escapeHTML(input[lastIndex:start]))
		}

		colorCode := input[start+2 : end-1]
		color, ok := colorMap[colorCode]
		if ok {
			if open {
				result.WriteString("</span>")
			}
			result.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		} else if colorCode == "0" && open {
			result.WriteString("</span>")
			open = false
		}

		lastIndex = end
	}

	if lastIndex < len(input) {
		result.WriteString(escapeHTML(input[lastIndex:]))
	}

	if open {
		result.WriteString("</span>")
	}

	result.WriteString("</pre>")

	return result.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Color mapping for ANSI codes
var colorMap = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"36": "cyan",
}

// Logs renders the buffered records as HTML.
func (z *ZapLogger) Logs() string {
	z.mu.Lock()
	defer z.mu.Unlock()
	return ansiToHTML(z.logBuf.String())
}

func (z *ZapLogger) ClearLogs() {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.logBuf.Reset()
}

// With returns a child logger sharing the buffer, with fields attached to
// every record.
func (z *ZapLogger) With(fields ...zap.Field) *ZapLogger {
	return &ZapLogger{
		log:    z.log.With(fields...),
		mu:     z.mu,
		logBuf: z.logBuf,
	}
}

func (z *ZapLogger) Sync() error {
	return z.log.Sync()
}

func (z *ZapLogger) Info(wrappedMsg string, fields ...zap.Field) {
	z.log.Info(wrappedMsg, fields...)
}

func (z *ZapLogger) Debug(wrappedMsg string, fields ...zap.Field) {
	z.log.Debug(wrappedMsg, fields...)
}

func (z *ZapLogger) Warn(wrappedMsg string, fields ...zap.Field) {
	z.log.Warn(wrappedMsg, fields...)
}

func (z *ZapLogger) Error(wrappedMsg string, fields ...zap.Field) {
	z.log.Error(wrappedMsg, fields...)
}

func (z *ZapLogger) Fatal(wrappedMsg string, fields ...zap.Field) {
	z.log.Fatal(wrappedMsg, fields...)
}

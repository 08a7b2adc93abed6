package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Logger receives every entry (file sink). It is a no-op until Init.
var Logger = zap.NewNop()
var consoleLogger = zap.NewNop() // for user-facing lines (SUCCESS, WARN, ERROR)
var mu sync.RWMutex

// Options controls where the loggers write.
type Options struct {
	// Console receives user-facing lines. Defaults to os.Stdout.
	Console io.Writer
	// Dir enables the file log at Dir/app.log when non-empty.
	Dir string
	// Level is the console threshold.
	Level   zapcore.Level
	NoColor bool
}

// Init builds the console and file loggers. It may be called more than once.
func Init(opts Options) error {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	consoleConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if opts.NoColor {
		consoleConfig.EncodeLevel = plainLevelEncoder
	}
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleConfig),
		zapcore.AddSync(console),
		opts.Level,
	)

	fileCore := zapcore.NewNopCore()
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
		writer, err := getLogFileWriter(filepath.Join(opts.Dir, "app.log"))
		if err != nil {
			return err
		}
		fileConfig := zapcore.EncoderConfig{
			TimeKey:     "time",
			LevelKey:    "level",
			MessageKey:  "msg",
			LineEnding:  zapcore.DefaultLineEnding,
			EncodeLevel: zapcore.CapitalLevelEncoder,
			EncodeTime:  zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		}
		fileCore = zapcore.NewCore(
			&customFileEncoder{Encoder: zapcore.NewConsoleEncoder(fileConfig)},
			writer,
			zapcore.DebugLevel,
		)
	}

	mu.Lock()
	defer mu.Unlock()
	Logger = zap.New(fileCore)
	consoleLogger = zap.New(consoleCore)
	return nil
}

// UseCore routes both loggers to core and returns a func restoring the previous ones.
func UseCore(core zapcore.Core) (restore func()) {
	mu.Lock()
	prevFile, prevConsole := Logger, consoleLogger
	Logger = zap.New(core)
	consoleLogger = zap.NewNop()
	mu.Unlock()

	return func() {
		mu.Lock()
		Logger, consoleLogger = prevFile, prevConsole
		mu.Unlock()
	}
}

// Sync flushes both loggers.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = Logger.Sync()
	_ = consoleLogger.Sync()
}

func loggers() (*zap.Logger, *zap.Logger) {
	mu.RLock()
	defer mu.RUnlock()
	return Logger, consoleLogger
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(colorCyan + "DEBUG" + colorReset)
	case zapcore.InfoLevel:
		enc.AppendString(colorGreen + "SUCCESS" + colorReset) // console INFO = SUCCESS
	case zapcore.WarnLevel:
		enc.AppendString(colorYellow + "WARN" + colorReset)
	case zapcore.ErrorLevel, zapcore.FatalLevel, zapcore.PanicLevel, zapcore.DPanicLevel:
		enc.AppendString(colorRed + level.CapitalString() + colorReset)
	default:
		enc.AppendString(colorWhite + level.CapitalString() + colorReset)
	}
}

func plainLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if level == zapcore.InfoLevel {
		enc.AppendString("SUCCESS")
		return
	}
	enc.AppendString(level.CapitalString())
}

// LogInfo writes to the file log only.
func LogInfo(message string, fields ...zap.Field) {
	file, _ := loggers()
	file.Info(message, fields...)
}

// LogSuccess writes to the file log and prints "✓ message" on the console.
func LogSuccess(message string, fields ...zap.Field) {
	file, console := loggers()
	file.Info(message, fields...)
	console.Info("✓ " + message)
}

// LogError writes to the file log and prints "✗ message" on the console.
func LogError(message string, fields ...zap.Field) {
	file, console := loggers()
	file.Error(message, fields...)
	console.Error("✗ " + message)
}

// LogWarn writes to the file log and prints the message on the console.
func LogWarn(message string, fields ...zap.Field) {
	file, console := loggers()
	file.Warn(message, fields...)
	console.Warn(message)
}

// LogDebug writes to the file log only.
func LogDebug(message string, fields ...zap.Field) {
	file, _ := loggers()
	file.Debug(message, fields...)
}

const (
	// MaxLogFileSize caps app.log; the file is truncated once it grows past it.
	MaxLogFileSize = 50 * 1024 * 1024
)

type rotatingLogWriter struct {
	file *os.File
	path string
	mu   sync.Mutex
}

func (w *rotatingLogWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	info, err := w.file.Stat()
	if err == nil && info.Size() > MaxLogFileSize {
		w.file.Close()

		w.file, err = os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return 0, fmt.Errorf("failed to truncate log file: %w", err)
		}
	}

	return w.file.Write(p)
}

func (w *rotatingLogWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Sync()
}

// getLogFileWriter opens path for append, truncating it first if it is over the cap.
func getLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if info, err := os.Stat(path); err == nil && info.Size() > MaxLogFileSize {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return &rotatingLogWriter{file: file, path: path}, nil
}

// customFileEncoder writes "time     LEVEL msg\t{fields as json}".
type customFileEncoder struct {
	zapcore.Encoder
}

func (e *customFileEncoder) Clone() zapcore.Encoder {
	return &customFileEncoder{
		Encoder: e.Encoder.Clone(),
	}
}

var bufferPool = buffer.NewPool()

func (e *customFileEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := bufferPool.Get()

	buf.AppendString(entry.Time.Format("2006-01-02 15:04:05"))
	buf.AppendString("     ")
	buf.AppendString(entry.Level.CapitalString())
	buf.AppendString(" ")
	buf.AppendString(entry.Message)

	if len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, field := range fields {
			field.AddTo(enc)
		}
		jsonData, err := json.Marshal(enc.Fields)
		if err == nil {
			buf.AppendString("\t")
			buf.AppendString(string(jsonData))
		}
	}

	buf.AppendString("\n")
	return buf, nil
}

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang-connect-line/configs"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Init func - configures the logrus standard logger from the log section
func Init(cfg configs.Log) error {
	return Configure(logrus.StandardLogger(), cfg)
}

// New func - returns a logger configured from the log section
func New(cfg configs.Log) (*logrus.Logger, error) {
	l := logrus.New()
	if err := Configure(l, cfg); err != nil {
		return nil, err
	}
	return l, nil
}

// Configure func - applies level, formatter and output to l
func Configure(l *logrus.Logger, cfg configs.Log) error {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		level = parsed
	}
	l.SetLevel(level)
	l.SetFormatter(formatter(cfg.Format))

	out, err := output(cfg)
	if err != nil {
		return err
	}
	l.SetOutput(out)
	return nil
}

func formatter(format string) logrus.Formatter {
	if strings.EqualFold(format, "json") {
		return &logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
				logrus.FieldKeyLevel: "level",
			},
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			s := strings.Split(f.Function, ".")
			return s[len(s)-1], fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	}
}

// output writes to stdout, and also to a rotated file when cfg.File is set
func output(cfg configs.Log) (io.Writer, error) {
	if cfg.File == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("logger: create log directory: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	return io.MultiWriter(os.Stdout, file), nil
}

// internal/infra/logging/logger.go
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// New は Cloud Logging 向けの JSON ロガーを返します。
// level が解釈できない場合は info。
func New(level string) *logrus.Logger {
	return NewWithWriter(level, os.Stdout)
}

func NewWithWriter(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = out

	lv, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lv = logrus.InfoLevel
	}
	log.Level = lv
	return log
}

// Discard はテスト用の出力しないロガー。
func Discard() *logrus.Logger {
	return NewWithWriter("panic", io.Discard)
}

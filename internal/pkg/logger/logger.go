package logger

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/qs3c/xbb_server/config"
)

// Log 全局日志入口，测试场景下未调用 Init 也可直接使用
var Log = logrus.NewEntry(logrus.StandardLogger())

// Init 根据配置初始化日志
func Init(cfg config.LogConfig) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	Log = l.WithField("service", "xbb_server")
	return Log
}

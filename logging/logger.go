package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is replaced by BoostrapLogger at startup; the default keeps packages usable in tests.
var Log = logrus.New()

func BoostrapLogger() {
	Log = &logrus.Logger{
		Out:   nil,
		Hooks: make(logrus.LevelHooks),
		Formatter: &logrus.TextFormatter{
			DisableColors:    false,
			DisableQuote:     false,
			DisableTimestamp: false,
			FullTimestamp:    true,
			TimestampFormat:  "",
		},
		ReportCaller: false,
		Level:        logrus.DebugLevel,
		ExitFunc:     os.Exit,
	}

	Log.SetReportCaller(true)
	Log.Out = os.Stdout
}

// Configure applies the level and optional rotated log file read from config.
// An empty file keeps logging on stdout only.
func Configure(level string, file string) {
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			Log.Warnf("unknown log level '%s', keeping %s", level, Log.GetLevel())
		} else {
			Log.SetLevel(lvl)
		}
	}

	if file == "" {
		return
	}

	rotated := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	Log.SetOutput(io.MultiWriter(os.Stdout, rotated))
	Log.Infof("logging to stdout and %s", file)
}

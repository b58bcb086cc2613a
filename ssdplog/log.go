// Package ssdplog is a thin, context-aware wrapper around logrus, matching
// the call-site shape used across this module: Info/Debug/Warn take a
// message and alternating key/value pairs, Error additionally takes the
// causing error.
package ssdplog

import (
	"context"

	"github.com/sirupsen/logrus"
)

var std = logrus.StandardLogger()

// SetLevel maps the CLI's 0..5 verbosity (Off/Error/Warn/Info/Debug/Trace)
// onto logrus levels.
func SetLevel(verbosity int) {
	switch verbosity {
	case 0:
		std.SetLevel(logrus.PanicLevel)
	case 1:
		std.SetLevel(logrus.ErrorLevel)
	case 2:
		std.SetLevel(logrus.WarnLevel)
	case 3:
		std.SetLevel(logrus.InfoLevel)
	case 4:
		std.SetLevel(logrus.DebugLevel)
	default:
		std.SetLevel(logrus.TraceLevel)
	}
}

func fields(kv []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		f[key] = kv[i+1]
	}
	return f
}

func Info(ctx context.Context, msg string, kv ...interface{}) {
	std.WithContext(ctx).WithFields(fields(kv)).Info(msg)
}

func Debug(ctx context.Context, msg string, kv ...interface{}) {
	std.WithContext(ctx).WithFields(fields(kv)).Debug(msg)
}

func Warn(ctx context.Context, msg string, kv ...interface{}) {
	std.WithContext(ctx).WithFields(fields(kv)).Warn(msg)
}

func Error(ctx context.Context, msg string, err error, kv ...interface{}) {
	std.WithContext(ctx).WithFields(fields(kv)).WithError(err).Error(msg)
}

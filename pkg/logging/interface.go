package logging

import (
	"fmt"
)

// Interface decouples provisioning stages from the concrete logging library.
// All stage code logs through this; only this package knows about zap.
type Interface interface {
	WithField(key string, value interface{}) Interface
	WithError(err error) Interface

	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

func fmtMsg(format string, args []interface{}) string {
	msg := format
	if len(args) != 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return msg
}

package logging

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// UseLoggingInterface makes fx itself log its events to the instance of
// logging.Interface inside the container being built.
var UseLoggingInterface fx.Option = fx.WithLogger(
	func(logger Interface) fxevent.Logger {
		return &fxLoggerAdapter{Interface: logger}
	},
)

type fxLoggerAdapter struct{ Interface }

// LogEvent logs an fx app event to the underlying logging.Interface.
func (f fxLoggerAdapter) LogEvent(event fxevent.Event) {
	log := f.Interface.WithField("fx", "event")

	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		infoOrErr("OnStart hook", e.Err,
			log.WithField("callee", e.FunctionName).
				WithField("caller", e.CallerName))
	case *fxevent.OnStopExecuted:
		infoOrErr("OnStop hook", e.Err,
			log.WithField("callee", e.FunctionName).
				WithField("caller", e.CallerName))
	case *fxevent.Provided:
		infoOrErr("provided", e.Err,
			log.WithField("constructor", e.ConstructorName))
	case *fxevent.Invoked:
		infoOrErr("invoked", e.Err,
			log.WithField("function", e.FunctionName))
	case *fxevent.Started:
		infoOrErr("started", e.Err, log)
	case *fxevent.Stopped:
		infoOrErr("stopped", e.Err, log)
	case *fxevent.LoggerInitialized:
		infoOrErr("logger initialized", e.Err, log)
	}
}

func infoOrErr(msg string, err error, log Interface) {
	if err != nil {
		log.WithError(err).Error(msg)
		return
	}
	log.Debug(msg)
}

package events

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// zerologAdapter forwards watermill logs into the global zerolog logger.
type zerologAdapter struct {
	fields watermill.LogFields
}

func NewLogger() watermill.LoggerAdapter {
	return &zerologAdapter{}
}

func (v *zerologAdapter) event(ev *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	return ev.Fields(map[string]any(v.fields.Add(fields)))
}

func (v *zerologAdapter) Error(msg string, err error, fields watermill.LogFields) {
	v.event(log.Error().Err(err), fields).Msg(msg)
}

func (v *zerologAdapter) Info(msg string, fields watermill.LogFields) {
	v.event(log.Info(), fields).Msg(msg)
}

func (v *zerologAdapter) Debug(msg string, fields watermill.LogFields) {
	v.event(log.Debug(), fields).Msg(msg)
}

func (v *zerologAdapter) Trace(msg string, fields watermill.LogFields) {
	v.event(log.Trace(), fields).Msg(msg)
}

func (v *zerologAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &zerologAdapter{fields: v.fields.Add(fields)}
}

// Package zerolog adapts a zerolog logger to the toolcache Logger interface.
package zerolog

import (
	"github.com/rs/zerolog"

	"github.com/dev-indra/toolcache"
)

var _ toolcache.Logger = ZerologLogger{}

type ZerologLogger struct{ L zerolog.Logger }

func (z ZerologLogger) Debug(msg string, f toolcache.Fields) { emit(z.L.Debug(), msg, f) }
func (z ZerologLogger) Info(msg string, f toolcache.Fields)  { emit(z.L.Info(), msg, f) }
func (z ZerologLogger) Warn(msg string, f toolcache.Fields)  { emit(z.L.Warn(), msg, f) }
func (z ZerologLogger) Error(msg string, f toolcache.Fields) { emit(z.L.Error(), msg, f) }

func emit(e *zerolog.Event, msg string, f toolcache.Fields) {
	if len(f) > 0 {
		e = e.Fields(map[string]any(f))
	}
	e.Msg(msg)
}

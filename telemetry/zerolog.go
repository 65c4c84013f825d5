package telemetry

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologObserver backs Observer with structured logging, following
// dyuri-vibe-tracker/utils/logger.go's setup (console writer for
// development, leveled JSON otherwise).
type ZerologObserver struct {
	log zerolog.Logger
}

// NewZerologObserver builds a ZerologObserver. When pretty is true it
// uses zerolog.ConsoleWriter (suited to local/dev runs); otherwise it
// writes leveled JSON to stdout (suited to batch/production runs).
func NewZerologObserver(pretty bool) *ZerologObserver {
	var out zerolog.Logger
	if pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	} else {
		out = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return &ZerologObserver{log: out}
}

func (z *ZerologObserver) OnStageStart(stage string) {
	z.log.Info().Str("stage", stage).Msg("stage started")
}

func (z *ZerologObserver) OnCandidateDone(done, total int) {
	z.log.Debug().Int("done", done).Int("total", total).Msg("candidate processed")
}

func (z *ZerologObserver) OnWarn(msg string, fields map[string]any) {
	ev := z.log.Warn()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is the structured logger for the HTTP layer. Nil disables logging.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// RequestLogger writes one line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if zlog == nil {
			next.ServeHTTP(w, r)
			return
		}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		ev := zlog.Info()
		if status >= http.StatusInternalServerError {
			ev = zlog.Warn()
		}
		ev = ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			ev = ev.Str("request_id", rid)
		}
		ev.Msg("http request")
	})
}

func logError(r *http.Request, err error, msg string) {
	if zlog == nil {
		return
	}
	ev := zlog.Error().Err(err)
	if r != nil {
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			ev = ev.Str("request_id", rid)
		}
	}
	ev.Msg(msg)
}

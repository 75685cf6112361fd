package shared

import (
	"net/http"

	"hrdesk/internal/platform/logger"
	"hrdesk/internal/transport/http/view"
)

// Render adds the pending flash message to data and renders the page.
func Render(w http.ResponseWriter, r *http.Request, renderer view.Renderer, status int, name string, data view.Data) {
	if data == nil {
		data = view.Data{}
	}
	if msg := PopFlash(w, r); msg != "" {
		data["flash"] = msg
	}
	if err := renderer.Render(w, status, name, data); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Str("template", name).Msg("render failed")
	}
}

// ServerError logs err and replies with a plain 500.
func ServerError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.FromContext(r.Context()).Error().Err(err).Msg(msg)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

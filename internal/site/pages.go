package site

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-syntrophic/pkg/dispatch"
	htmlrenderer "github.com/goliatone/go-syntrophic/pkg/renderers/html"
	"github.com/goliatone/go-syntrophic/pkg/waitlist"
)

const (
	msgInvalidEmail   = "Please enter a valid email address."
	msgDeliveryFailed = "Something went wrong."
)

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	body, err := s.pages.Landing(r.Context(), htmlrenderer.LandingData{})
	s.writePage(w, http.StatusOK, body, err)
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	body, err := s.pages.Gallery(r.Context(), htmlrenderer.DefaultFeatures())
	s.writePage(w, http.StatusOK, body, err)
}

// handleForm is the no-script fallback for the landing page forms. The form
// fails visibly: the page is rendered again with the status and a retry.
func (s *Server) handleForm(kind waitlist.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		email, agentDID := r.PostForm.Get("email"), r.PostForm.Get("agentDid")

		form := waitlist.New(kind, dispatch.New(s.transport, dispatch.WithLogger(s.logger)),
			waitlist.WithLogger(s.logger))
		_, err := form.Submit(r.Context(), email, agentDID)

		status, _ := form.Status()
		state := htmlrenderer.FormState{Status: string(status), Email: email, AgentDID: agentDID}
		code := http.StatusOK
		switch {
		case errors.Is(err, waitlist.ErrInvalidEmail):
			state.Message, code = msgInvalidEmail, http.StatusBadRequest
		case err != nil:
			s.logger.Warn("landing form failed", zap.String("path", kind.Path()), zap.Error(err))
			state.Message, code = msgDeliveryFailed, http.StatusBadGateway
		default:
			state.Email, state.AgentDID = "", ""
		}

		var data htmlrenderer.LandingData
		if kind == waitlist.Cluster {
			data.Waitlist = state
		} else {
			data.Subscribe = state
		}
		body, renderErr := s.pages.Landing(r.Context(), data)
		s.writePage(w, code, body, renderErr)
	}
}

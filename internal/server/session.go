package server

import (
	"net/http"

	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/survey"
)

// CSRFHeader may carry the token for clients that do not post forms.
const CSRFHeader = "X-CSRF-Token"

// session resolves the caller's session, issuing a cookie when a new one is
// created.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*survey.Session, bool) {
	var id string
	if cookie, err := r.Cookie(s.opts.CookieName); err == nil {
		id = cookie.Value
	}

	sess, created := s.store.Resolve(id)
	if created {
		cookie := &http.Cookie{
			Name:     s.opts.CookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.opts.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		}
		if s.opts.SessionTTL > 0 {
			cookie.MaxAge = int(s.opts.SessionTTL.Seconds())
		}
		http.SetCookie(w, cookie)
		s.opts.Logger.Debug("session created", zapSession(sess))
	}
	return sess, created
}

// verifyCSRF rejects POSTs whose token does not match the session. A session
// created by this very request has never handed out its token, so it fails
// as well.
func verifyCSRF(sess *survey.Session, created bool, r *http.Request) bool {
	if created {
		return false
	}
	token := r.PostFormValue(render.CSRFFieldName)
	if token == "" {
		token = r.Header.Get(CSRFHeader)
	}
	return sess.CheckCSRF(token)
}

package render

import (
	"time"

	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry per-request data that is not part of the survey state.
type RenderOptions struct {
	// Action is the URL the main form posts to.
	Action string
	// AnswersAction is the URL the follow-up answers form posts to.
	AnswersAction string
	// Hidden fields are emitted inside every form, e.g. the CSRF token.
	Hidden []HiddenField
	// RefreshAfter asks the page to reload while questions are being fetched.
	// Zero disables the hint.
	RefreshAfter time.Duration
	// Theme supplies the resolved design tokens.
	Theme *theme.RendererConfig
}

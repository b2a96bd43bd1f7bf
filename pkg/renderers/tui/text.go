package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-surveyform/pkg/render"
)

// TextRenderer renders the summary and follow-up answers of a page as plain
// text.
type TextRenderer struct{}

var _ render.Renderer = TextRenderer{}

// NewTextRenderer returns the plain text renderer.
func NewTextRenderer() TextRenderer {
	return TextRenderer{}
}

func (TextRenderer) Name() string {
	return "text"
}

func (TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (TextRenderer) Render(ctx context.Context, page render.Page, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", page.Title)

	if page.Summary == nil {
		b.WriteString("\nNo submission yet.\n")
		return []byte(b.String()), nil
	}

	b.WriteString("\nSummary\n")
	for _, row := range page.Summary.Rows {
		fmt.Fprintf(&b, "  %s: %s\n", row.Label, row.Value)
	}
	if section := page.Summary.Section; section != nil {
		fmt.Fprintf(&b, "\n  %s\n", section.Heading)
		for _, row := range section.Rows {
			fmt.Fprintf(&b, "    %s: %s\n", row.Label, row.Value)
		}
	}
	fmt.Fprintf(&b, "  %s: %s\n", page.Summary.Feedback.Label, page.Summary.Feedback.Value)

	if page.Fetching {
		b.WriteString("\nLoading follow-up questions...\n")
	}
	if len(page.Questions) > 0 {
		b.WriteString("\nFollow-up questions\n")
		for _, q := range page.Questions {
			fmt.Fprintf(&b, "  %s\n    > %s\n", q.Text, q.Answer)
		}
	}
	return []byte(b.String()), nil
}

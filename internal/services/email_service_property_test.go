package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// A derived preview never contains a newline and never exceeds 120
// characters; short bodies are kept whole.
func TestProperty_DerivePreview(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	bodyGen := gen.SliceOf(gen.OneGenOf(gen.AlphaString(), gen.Const("\n"), gen.Const(" "))).Map(func(parts []string) string {
		return strings.Join(parts, "")
	})

	properties.Property("preview_is_single_line_and_bounded", prop.ForAll(
		func(body string) bool {
			preview := DerivePreview(body)
			if strings.Contains(preview, "\n") || utf8.RuneCountInString(preview) > previewMaxLength {
				return false
			}

			flattened := strings.TrimSpace(strings.ReplaceAll(body, "\n", " "))
			if utf8.RuneCountInString(flattened) <= previewMaxLength {
				return preview == flattened
			}
			return strings.HasSuffix(preview, "...") && strings.HasPrefix(flattened, strings.TrimSuffix(preview, "..."))
		},
		bodyGen,
	))

	properties.TestingRun(t)
}

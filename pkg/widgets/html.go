package widgets

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// RenderHTML serialises nodes and sanitises the result. Nil nodes are skipped.
func RenderHTML(nodes ...*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if err := html.Render(&buf, node); err != nil {
			return "", fmt.Errorf("widgets: render html: %w", err)
		}
	}
	return Sanitize(buf.String()), nil
}

// Sanitize strips everything but form markup from raw. Widget attributes can
// originate from schema documents, so every rendered fragment goes through it.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(formSanitizer().Sanitize(trimmed))
}

func formSanitizer() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"form", "fieldset", "legend", "label", "input", "button", "select",
			"option", "textarea", "div", "span", "p", "small", "ul", "li",
		)
		policy.AllowAttrs(
			"class", "id", "name", "type", "value", "checked", "selected",
			"disabled", "readonly", "required", "multiple", "placeholder",
			"min", "max", "minlength", "maxlength", "step", "rows", "cols",
			"for", "title", "autocomplete", "role", "aria-label",
			"aria-describedby", "aria-invalid",
		).Globally()
		policy.AllowAttrs("pattern").OnElements("input")
		policy.AllowDataAttributes()
		formPolicy = policy
	})
	return formPolicy
}

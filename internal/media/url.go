// Package media builds delivery URLs for the hosted image-transformation
// service. No rendering or encoding happens locally; the CDN interprets the
// transformation directives embedded in the URL.
package media

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/arpanp11/imaginify-saas/internal/transform"
)

const defaultBaseURL = "https://res.cloudinary.com"

type URLBuilder struct {
	baseURL   string
	cloudName string
}

func NewURLBuilder(cloudName string) *URLBuilder {
	return &URLBuilder{
		baseURL:   defaultBaseURL,
		cloudName: cloudName,
	}
}

// TransformationURL renders the delivery URL for a public asset id with the
// committed configuration applied at the given dimensions.
func (b *URLBuilder) TransformationURL(publicID string, width, height int, cfg transform.Config) string {
	segments := []string{fmt.Sprintf("w_%d,h_%d", width, height)}

	for _, kind := range sortedKinds(cfg) {
		if directive := kindDirective(kind, cfg[kind]); directive != "" {
			segments = append(segments, directive)
		}
	}

	return fmt.Sprintf("%s/%s/image/upload/%s/%s",
		b.baseURL, b.cloudName, strings.Join(segments, "/"), publicID)
}

func sortedKinds(cfg transform.Config) []string {
	kinds := make([]string, 0, len(cfg))
	for kind := range cfg {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func kindDirective(kind string, params map[string]interface{}) string {
	switch kind {
	case transform.KindRestore:
		return "e_gen_restore"
	case transform.KindFillBackground:
		return "b_gen_fill"
	case transform.KindRemoveBackground:
		return "e_background_removal"
	case transform.KindRemove:
		directive := fmt.Sprintf("e_gen_remove:prompt_%s", promptParam(params))
		if boolParam(params, "removeShadow") {
			directive += ";remove-shadow_true"
		}
		if boolParam(params, "multiple") {
			directive += ";multiple_true"
		}
		return directive
	case transform.KindRecolor:
		directive := fmt.Sprintf("e_gen_recolor:prompt_%s", promptParam(params))
		if to, ok := params["to"].(string); ok && to != "" {
			directive += fmt.Sprintf(";to-color_%s", url.PathEscape(to))
		}
		if boolParam(params, "multiple") {
			directive += ";multiple_true"
		}
		return directive
	}
	return ""
}

func promptParam(params map[string]interface{}) string {
	prompt, _ := params["prompt"].(string)
	return url.PathEscape(prompt)
}

func boolParam(params map[string]interface{}, key string) bool {
	v, _ := params[key].(bool)
	return v
}

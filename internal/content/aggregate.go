// Package content assembles the composite search text for a post and
// parses post identity out of page locations.
package content

import (
	"fmt"
	"strings"
)

// captionPlaceholder is the boilerplate alt text some platforms attach to
// images carrying no description. It pollutes scoring with no signal, so
// it is filtered out.
const captionPlaceholder = "Image"

// Aggregate is the composite text built from a post's parts. SearchText
// feeds the tokenizer; DisplayText is the human-readable variant.
type Aggregate struct {
	SearchText  string `json:"search_text"`
	DisplayText string `json:"display_text"`
}

// FilterCaptions drops empty and placeholder captions, preserving order.
func FilterCaptions(captions []string) []string {
	kept := make([]string, 0, len(captions))
	for _, c := range captions {
		c = strings.TrimSpace(c)
		if c == "" || c == captionPlaceholder {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// BuildSearchText joins the non-empty parts of a post in order: primary
// text, quoted text, then captions. The search text is a flat space-joined
// string; the display text brackets the quote and caption parts.
func BuildSearchText(primary, quote string, captions []string) Aggregate {
	captions = FilterCaptions(captions)
	captionText := strings.Join(captions, " ")

	searchParts := make([]string, 0, 3)
	displayParts := make([]string, 0, 3)

	if primary != "" {
		searchParts = append(searchParts, primary)
		displayParts = append(displayParts, primary)
	}
	if quote != "" {
		searchParts = append(searchParts, quote)
		displayParts = append(displayParts, fmt.Sprintf("[Quoted: %s]", quote))
	}
	if captionText != "" {
		searchParts = append(searchParts, captionText)
		displayParts = append(displayParts, fmt.Sprintf("[Image text: %s]", captionText))
	}

	return Aggregate{
		SearchText:  strings.Join(searchParts, " "),
		DisplayText: strings.Join(displayParts, "\n"),
	}
}

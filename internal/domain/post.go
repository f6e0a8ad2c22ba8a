package domain

// Post represents the authoritative content item extracted from a page view.
// It is constructed once per navigation event and is immutable afterwards.
type Post struct {
	// Core identifiers
	ID     string `json:"id"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url,omitempty"`

	// Extracted text
	Text      string   `json:"text"`
	QuoteText string   `json:"quote_text,omitempty"`
	Captions  []string `json:"captions,omitempty"`

	// Composite text assembled by the content aggregator
	SearchText  string `json:"search_text"`
	DisplayText string `json:"display_text,omitempty"`
}

// HasContent reports whether the post carries any matchable text.
// A post with an empty primary text is still usable when a quote or a
// caption is present.
func (p *Post) HasContent() bool {
	if p == nil {
		return false
	}
	if p.Text != "" || p.QuoteText != "" {
		return true
	}
	for _, c := range p.Captions {
		if c != "" {
			return true
		}
	}
	return false
}

// Candidate is a structural node competing to be recognized as the page's
// primary post. It carries the signals extracted by the content-location
// collaborator; a missing signal is simply the zero value and contributes
// nothing to the candidate's score.
type Candidate struct {
	// TimestampID is the post ID behind the candidate's timestamp
	// permalink, when one was found.
	TimestampID string `json:"timestamp_id,omitempty"`

	// Links holds the hrefs of all outbound links inside the candidate.
	Links []string `json:"links,omitempty"`

	// Extracted text content
	Text      string   `json:"text,omitempty"`
	QuoteText string   `json:"quote_text,omitempty"`
	Captions  []string `json:"captions,omitempty"`
}

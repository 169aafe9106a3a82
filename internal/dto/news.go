package dto

import "github.com/newskeeper/newskeeper/internal/domain"

// Headline is a fetched article annotated with whether the current
// account already saved it.
type Headline struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	URL         string `json:"url"`
	Saved       bool   `json:"saved"`
}

type HeadlinesResponse struct {
	Articles []Headline `json:"articles"`
}

// ProfileResponse is the profile screen payload: the user plus
// best-effort location and weather strings. The enrichment fields are
// placeholders when resolution failed; they never fail the request.
type ProfileResponse struct {
	Profile  Profile `json:"profile"`
	Location string  `json:"location"`
	Weather  string  `json:"weather"`
}

func HeadlineFromDomain(h domain.Headline, saved bool) Headline {
	return Headline{
		Title:       h.Title,
		Description: h.Description,
		ImageURL:    h.ImageURL,
		URL:         h.URL,
		Saved:       saved,
	}
}

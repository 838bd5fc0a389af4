package domain

// Place is a tourist attraction returned by the wiki lookup. It lives
// outside the Offer schema: places have no price and are never deduped
// against hotels or transport.
type Place struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rating      string `json:"rating"`
	ReviewCount string `json:"reviewCount,omitempty"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Link        string `json:"link"`
	Source      string `json:"source"`
}

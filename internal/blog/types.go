package blog

// Post is the full per-page output document written to posts/{slug}.json.
// The front end indexes by slug, so field names and shapes must stay stable.
type Post struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	PublishedDate string   `json:"publishedDate"`
	Tags          []string `json:"tags"`
	HTML          string   `json:"html"`
}

// Summary is the per-page entry of index.json: Post minus the HTML body.
type Summary struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	PublishedDate string   `json:"publishedDate"`
	Tags          []string `json:"tags"`
}

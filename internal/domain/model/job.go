package model

// JobSource is an AI-generated credibility review of the platform a listing
// claims to originate from. Owned exclusively by its JobListing.
type JobSource struct {
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"` // 1 (poor) to 5 (excellent)
	Summary string  `json:"summary"`
}

// JobListing is one synthesized job result. URL is the natural identifier:
// favorites dedup and PDF filenames key on it. The system enforces no
// uniqueness; duplicates from the provider are accepted as-is.
type JobListing struct {
	JobTitle    string    `json:"jobTitle"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      JobSource `json:"source"`
}

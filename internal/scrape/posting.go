package scrape

// Posting is the normalized record produced for one job-posting URL. Every
// field is a plain string that defaults to empty, so consumers never need a
// nil check. Source names the strategy that produced the record and is
// always set. When extraction fails outright, the content fields stay empty
// and Err carries a human-readable message.
type Posting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	JobID       string `json:"job_id,omitempty"`
	Source      string `json:"source"`
	Err         string `json:"error,omitempty"`
}

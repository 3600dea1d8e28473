package models

import "time"

// Page represents the latest revision of a wiki page, keyed by its URL path.
type Page struct {
	URL        string    `json:"url"`
	Subject    string    `json:"subject"`
	Content    string    `json:"content"`
	CreatedBy  string    `json:"created_by,omitempty"`
	Created    time.Time `json:"created"`
	LastEdited time.Time `json:"last_edited"`
	Version    int       `json:"version"`
}

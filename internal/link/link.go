package link

import (
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Link is a preview link record. The slug is the public identifier used in
// the shareable URL; ClickCount is mutated only through the repository's
// atomic increment operation.
type Link struct {
	ID           uuid.UUID
	Slug         string
	Title        string
	Description  string
	TargetURL    string
	AffiliateURL string
	ImageURL     string
	IsActive     bool
	ClickCount   int64
	CreatedAt    time.Time
}

// Draft holds the editable fields of a link before it is persisted.
type Draft struct {
	Slug         string
	Title        string
	Description  string
	TargetURL    string
	AffiliateURL string
	ImageURL     string
	IsActive     bool
}

// NewDraft returns an empty draft with the default activation state.
func NewDraft() Draft {
	return Draft{IsActive: true}
}

// Validate checks the required fields without contacting any store.
func (d Draft) Validate() error {
	if d.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}

	if d.TargetURL == "" {
		return &ValidationError{Field: "target_url", Message: "target URL is required"}
	}

	if !IsValidURL(d.TargetURL) {
		return &ValidationError{Field: "target_url", Message: "target URL must be a valid absolute URL"}
	}

	if d.AffiliateURL == "" {
		return &ValidationError{Field: "affiliate_url", Message: "affiliate URL is required"}
	}

	if !IsValidURL(d.AffiliateURL) {
		return &ValidationError{Field: "affiliate_url", Message: "affiliate URL must be a valid absolute URL"}
	}

	if d.ImageURL != "" && !IsValidURL(d.ImageURL) {
		return &ValidationError{Field: "image_url", Message: "image URL must be a valid absolute URL"}
	}

	return nil
}

// IsValidURL reports whether raw parses as an absolute http(s) URL.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

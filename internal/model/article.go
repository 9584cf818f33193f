package model

import "time"

// Moderation statuses an article can hold.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

// ValidStatus reports whether s is a known moderation status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined:
		return true
	}
	return false
}

// Option is a value/label pair as produced by the client's select inputs.
// Publishers and tags are stored this way.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Article is a submitted news article.
// DeclineReason is only ever set while Status is StatusDeclined.
type Article struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Image         string    `json:"image,omitempty"`
	AuthorEmail   string    `json:"authorEmail"`
	AuthorName    string    `json:"authorName,omitempty"`
	AuthorPhoto   string    `json:"authorPhoto,omitempty"`
	Publisher     *Option   `json:"publisher,omitempty"`
	Tags          []Option  `json:"tags"`
	Status        string    `json:"status"`
	DeclineReason *string   `json:"declineReason,omitempty"`
	Views         int64     `json:"views"`
	IsPremium     bool      `json:"isPremium"`
	IsExclusive   bool      `json:"isExclusive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PublisherCount is one row of the per-publisher article aggregate.
type PublisherCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ArticlePatch lists the article fields an author may change after submission.
// Nil fields are left untouched. Moderation fields and counters are not patchable.
type ArticlePatch struct {
	Title       *string   `json:"title,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Publisher   *Option   `json:"publisher,omitempty"`
	Tags        *[]Option `json:"tags,omitempty"`
	IsExclusive *bool     `json:"isExclusive,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ArticlePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Image == nil &&
		p.Publisher == nil && p.Tags == nil && p.IsExclusive == nil
}

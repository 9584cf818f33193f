package model

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a reader/author account keyed by email.
// PremiumInfo marks the end of the premium window; nil means not premium.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name,omitempty"`
	Photo       string     `json:"photo,omitempty"`
	Role        string     `json:"role"`
	PremiumInfo *time.Time `json:"premiumInfo"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UserStats aggregates user counts for the dashboard.
type UserStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	NormalUsers  int64 `json:"normalUsers"`
	PremiumUsers int64 `json:"premiumUsers"`
}

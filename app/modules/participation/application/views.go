package participationservice

import (
	"time"

	"github.com/google/uuid"
)

// ResultInput is a finished race. Every field is optional; the row is set
// to COMPLETED regardless.
type ResultInput struct {
	FinishTime       *string    `json:"finishTime"`
	Position         *int       `json:"position"`
	CategoryPosition *int       `json:"categoryPosition"`
	Notes            *string    `json:"notes"`
	PersonalRating   *int       `json:"personalRating"`
	CompletedAt      *time.Time `json:"completedAt"`

	// Edition results only.
	BibNumber    *string `json:"bibNumber"`
	CategoryType *string `json:"categoryType"`
	CategoryName *string `json:"categoryName"`
}

// UserSummary is the public part of a user profile.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	Avatar    *string   `json:"avatar,omitempty"`
	Country   *string   `json:"country,omitempty"`
}

// RankingEntryView is one leaderboard position.
type RankingEntryView struct {
	Rank  int         `json:"rank"`
	User  UserSummary `json:"user"`
	Count int         `json:"count"`
}

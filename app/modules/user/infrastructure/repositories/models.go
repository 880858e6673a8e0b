package userdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the public profile the ranking shows next to each position.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Username      string    `bun:"username,unique,notnull" json:"username"`
	FirstName     *string   `bun:"first_name" json:"firstName,omitempty"`
	LastName      *string   `bun:"last_name" json:"lastName,omitempty"`
	Avatar        *string   `bun:"avatar" json:"avatar,omitempty"`
	Country       *string   `bun:"country" json:"country,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

package domain

import (
	"context"
	"time"
)

// User is the catalog's view of an account. Registration, credentials and
// token issuance live in a separate identity service; the catalog only ever
// reads users to attribute movies and likes.
type User struct {
	ID        int
	Email     string
	CreatedAt time.Time
}

type UserRepository interface {
	GetByID(ctx context.Context, id int) (*User, error)
}

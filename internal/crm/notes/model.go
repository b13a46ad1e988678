package notes

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-form note attached to an account. A note belongs to the
// user who wrote it; other non-admin users cannot read or change it.
type Note struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Body      string    `json:"body"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID implements the authz.Owned capability.
func (n Note) OwnerID() uuid.UUID {
	return n.CreatedBy
}

package opportunities

import (
	"time"

	"github.com/google/uuid"
)

// Pipeline stages for an opportunity.
const (
	StageProspecting = "prospecting"
	StageQualified   = "qualified"
	StageProposal    = "proposal"
	StageWon         = "won"
	StageLost        = "lost"
)

// Opportunity is a potential deal against an account. The creating rep
// owns it; only the owner or an administrator may change it.
type Opportunity struct {
	ID        uuid.UUID  `json:"id"`
	AccountID uuid.UUID  `json:"account_id"`
	Name      string     `json:"name"`
	Stage     string     `json:"stage"`
	Amount    float64    `json:"amount"`
	CloseDate *time.Time `json:"close_date,omitempty"`
	CreatedBy uuid.UUID  `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// OwnerID implements the authz.Owned capability.
func (o Opportunity) OwnerID() uuid.UUID {
	return o.CreatedBy
}

// ValidStage reports whether s names a known pipeline stage.
func ValidStage(s string) bool {
	switch s {
	case StageProspecting, StageQualified, StageProposal, StageWon, StageLost:
		return true
	}
	return false
}

package demos

import "github.com/google/uuid"

type CreateDemoRequest struct {
	AccountID   string  `json:"account_id" validate:"required,uuid"`
	ContactID   *string `json:"contact_id,omitempty" validate:"omitempty,uuid"`
	ScheduledAt string  `json:"scheduled_at" validate:"required"`
	Summary     *string `json:"summary,omitempty" validate:"omitempty,max=2000"`
}

type UpdateDemoRequest struct {
	ScheduledAt *string `json:"scheduled_at,omitempty"`
	Status      *string `json:"status,omitempty"`
	Summary     *string `json:"summary,omitempty" validate:"omitempty,max=2000"`
}

type ListDemosRequest struct {
	AccountID *uuid.UUID
	Status    *string
	Limit     int `validate:"gte=0,lte=200"`
	Offset    int `validate:"gte=0"`
}

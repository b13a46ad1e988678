package opportunities

import "github.com/google/uuid"

type CreateOpportunityRequest struct {
	AccountID string  `json:"account_id" validate:"required,uuid"`
	Name      string  `json:"name" validate:"required,max=200"`
	Stage     string  `json:"stage" validate:"required"`
	Amount    float64 `json:"amount" validate:"gte=0"`
	CloseDate *string `json:"close_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateOpportunityRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Stage     *string  `json:"stage,omitempty"`
	Amount    *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	CloseDate *string  `json:"close_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ListOpportunitiesRequest struct {
	AccountID *uuid.UUID
	Stage     *string
	Limit     int `validate:"gte=0,lte=200"`
	Offset    int `validate:"gte=0"`
}

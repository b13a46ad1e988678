package contacts

import "github.com/google/uuid"

type CreateContactRequest struct {
	AccountID string  `json:"account_id" validate:"required,uuid"`
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Title     *string `json:"title,omitempty" validate:"omitempty,max=100"`
}

type UpdateContactRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Title     *string `json:"title,omitempty" validate:"omitempty,max=100"`
}

type ListContactsRequest struct {
	AccountID *uuid.UUID
	Search    *string
	Limit     int `validate:"gte=0,lte=200"`
	Offset    int `validate:"gte=0"`
}

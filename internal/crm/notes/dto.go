package notes

import "github.com/google/uuid"

type CreateNoteRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	Body      string `json:"body" validate:"required,max=4000"`
}

type UpdateNoteRequest struct {
	Body string `json:"body" validate:"required,max=4000"`
}

type ListNotesRequest struct {
	AccountID *uuid.UUID
	Limit     int `validate:"gte=0,lte=200"`
	Offset    int `validate:"gte=0"`
}

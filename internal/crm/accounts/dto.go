package accounts

type CreateAccountRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Industry *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	Website  *string `json:"website,omitempty" validate:"omitempty,url"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country  *string `json:"country,omitempty" validate:"omitempty,len=2"`
}

type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Industry *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	Website  *string `json:"website,omitempty" validate:"omitempty,url"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country  *string `json:"country,omitempty" validate:"omitempty,len=2"`
}

type ListAccountsRequest struct {
	Search *string
	Limit  int `validate:"gte=0,lte=200"`
	Offset int `validate:"gte=0"`
}

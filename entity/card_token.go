package entity

// CardTokenRequest carries raw card data for the tokenization endpoint.
type CardTokenRequest struct {
	ServiceId  string `validate:"required"`
	Card       string `validate:"required"`
	ExpMonth   string `validate:"required,max=2"`
	ExpYear    string `validate:"required"`
	Cvc        string `validate:"required"`
	CardHolder string
}

// CardTokenResponse wraps the result of a card token creation.
type CardTokenResponse struct {
	Status  string
	Token   string
	Message string
	Raw     Response
}

func NewCardTokenResponse(response Response) *CardTokenResponse {
	return &CardTokenResponse{
		Status:  response.Status(),
		Token:   response.String("token"),
		Message: response.Message(),
		Raw:     response,
	}
}

package entity

const (
	CommissionPartner = "partner"
	CommissionAbonent = "abonent"
)

// PaymentRequest holds the fields of a payment initiation. BankParams and Extra
// are merged flat into the request, Extra last, so either may override a base field.
type PaymentRequest struct {
	PayType         string `validate:"required"`
	Cost            string `validate:"required"`
	Name            string `validate:"required"`
	Email           string `validate:"required"`
	Phone           string `validate:"required"`
	OrderId         string
	Comment         string
	BankParams      map[string]string
	Commission      string `validate:"omitempty,oneof=partner abonent"`
	CardToken       string
	RecurrentParams string
	Extra           map[string]string
}

// RefundRequest describes a full or partial refund of a transaction.
// Amount and Reason are sent as given.
type RefundRequest struct {
	Tid    string `json:"tid"`
	Amount string `json:"amount"`
	Test   bool   `json:"test"`
	Reason string `json:"reason"`
}

package entity

import "time"

// Callback is a payment notification posted by the gateway.
type Callback struct {
	Tid           string    `json:"tid" bson:"tid"`
	Name          string    `json:"name" bson:"name"`
	Comment       string    `json:"comment" bson:"comment"`
	PartnerId     string    `json:"partner_id" bson:"partner_id"`
	ServiceId     string    `json:"service_id" bson:"service_id"`
	OrderId       string    `json:"order_id" bson:"order_id"`
	Type          string    `json:"type" bson:"type"`
	Cost          string    `json:"cost" bson:"cost"`
	IncomeTotal   string    `json:"income_total" bson:"income_total"`
	Income        string    `json:"income" bson:"income"`
	PartnerIncome string    `json:"partner_income" bson:"partner_income"`
	SystemIncome  string    `json:"system_income" bson:"system_income"`
	Command       string    `json:"command" bson:"command"`
	PhoneNumber   string    `json:"phone_number" bson:"phone_number"`
	Email         string    `json:"email" bson:"email"`
	ResultStr     string    `json:"resultStr" bson:"result_str"`
	DateCreated   string    `json:"date_created" bson:"date_created"`
	Version       string    `json:"version" bson:"version"`
	Check         string    `json:"check" bson:"check"`
	TimeReceived  time.Time `json:"time_received" bson:"time_received"`
}

func (c *Callback) DataType() string {
	return "callback"
}

// NewCallback maps posted form fields onto a Callback.
func NewCallback(post map[string]string) *Callback {
	return &Callback{
		Tid:           post["tid"],
		Name:          post["name"],
		Comment:       post["comment"],
		PartnerId:     post["partner_id"],
		ServiceId:     post["service_id"],
		OrderId:       post["order_id"],
		Type:          post["type"],
		Cost:          post["cost"],
		IncomeTotal:   post["income_total"],
		Income:        post["income"],
		PartnerIncome: post["partner_income"],
		SystemIncome:  post["system_income"],
		Command:       post["command"],
		PhoneNumber:   post["phone_number"],
		Email:         post["email"],
		ResultStr:     post["resultStr"],
		DateCreated:   post["date_created"],
		Version:       post["version"],
		Check:         post["check"],
		TimeReceived:  time.Now(),
	}
}

// Package entity defines data models exchanged with the Alba payment gateway.
package entity

import (
	"encoding/json"
	"fmt"
)

const (
	StatusOk    = "ok"
	StatusError = "error"
)

// Response is a decoded gateway JSON object. Numbers are kept as json.Number
// so that amounts pass through without float rounding.
type Response map[string]any

func (r Response) Status() string {
	return r.String("status")
}

// String returns the field as text, or an empty string if it is absent or null.
func (r Response) String(key string) string {
	value, ok := r[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Message returns the error text, which the gateway sends either as msg or message.
func (r Response) Message() string {
	if msg, ok := r["msg"]; ok && msg != nil {
		return r.String("msg")
	}
	return r.String("message")
}

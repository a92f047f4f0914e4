package gateway_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alba/gateway"
)

func refundParams() gateway.Params {
	return gateway.Params{
		"version": "2.0",
		"tid":     "12345",
		"amount":  "10.50",
		"reason":  "a b+c/~ж",
	}
}

func TestSign_KnownVector(t *testing.T) {
	check, err := gateway.Sign("POST", "https://partner.rficb.ru/alba/refund/", refundParams(), "secret")
	require.NoError(t, err)
	assert.Equal(t, "oovGpyllFhI1b82JD7cK294OLOWuinQaA1UoyI3RC2M=", check)
}

func TestSign_IgnoresCheckAndMacAndMethodCase(t *testing.T) {
	params := refundParams()
	params["check"] = "zzz"
	params["mac"] = "x"

	check, err := gateway.Sign("post", "https://partner.rficb.ru/alba/refund/", params, "secret")
	require.NoError(t, err)
	assert.Equal(t, "oovGpyllFhI1b82JD7cK294OLOWuinQaA1UoyI3RC2M=", check)
}

func TestSign_GetWithPort(t *testing.T) {
	params := gateway.Params{"version": "2.0", "gate": "mc", "service_id": "42"}
	check, err := gateway.Sign("GET", "http://127.0.0.1:8080/alba/gate_details/", params, "key")
	require.NoError(t, err)
	assert.Equal(t, "fuJYackfIJovGIp6ZBC//V1T7SeioqlcjYsMb/Aqa0s=", check)
}

func TestSign_Deterministic(t *testing.T) {
	first, err := gateway.Sign("POST", "https://partner.rficb.ru/alba/refund/", refundParams(), "secret")
	require.NoError(t, err)
	second, err := gateway.Sign("POST", "https://partner.rficb.ru/alba/refund/", refundParams(), "secret")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSign_AnyChangeChangesSignature(t *testing.T) {
	base, err := gateway.Sign("POST", "https://partner.rficb.ru/alba/refund/", refundParams(), "secret")
	require.NoError(t, err)

	for key := range refundParams() {
		params := refundParams()
		params[key] = params[key] + "1"
		check, err := gateway.Sign("POST", "https://partner.rficb.ru/alba/refund/", params, "secret")
		require.NoError(t, err)
		assert.NotEqual(t, base, check, "changing %s must change the signature", key)
	}

	otherSecret, err := gateway.Sign("POST", "https://partner.rficb.ru/alba/refund/", refundParams(), "secret2")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherSecret)

	asGet, err := gateway.Sign("GET", "https://partner.rficb.ru/alba/refund/", refundParams(), "secret")
	require.NoError(t, err)
	assert.NotEqual(t, base, asGet)
}

func TestSigner_PlainCheck(t *testing.T) {
	assert.Equal(t, "10b168cd4f742410888c3c110f7a7e71", gateway.NewSigner("secret").PlainCheck("1234"))
}

func callbackPost() map[string]string {
	return map[string]string{
		"tid":            "100500",
		"name":           "Order 7",
		"comment":        "",
		"partner_id":     "11",
		"service_id":     "1234",
		"order_id":       "7",
		"type":           "spg",
		"cost":           "100.00",
		"income_total":   "96.00",
		"income":         "96.00",
		"partner_income": "96.00",
		"system_income":  "4.00",
		"command":        "success",
		"phone_number":   "79991234567",
		"email":          "buyer@example.com",
		"resultStr":      "OK",
		"date_created":   "2024-03-01 12:00:00",
		"version":        "2.0",
		"check":          "5ff58b711238a042d9b6f98a9da9efe2",
	}
}

func TestCheckCallback_KnownVector(t *testing.T) {
	assert.True(t, gateway.NewSigner("secret").CheckCallback(callbackPost()))
}

func TestCheckCallback_AnyFieldChangeFails(t *testing.T) {
	signer := gateway.NewSigner("secret")
	for _, field := range gateway.CallbackFields {
		post := callbackPost()
		post[field] = post[field] + "x"
		assert.False(t, signer.CheckCallback(post), "changing %s must invalidate the check", field)
	}
}

func TestCheckCallback_MissingFieldIsEmpty(t *testing.T) {
	post := callbackPost()
	delete(post, "comment")
	assert.True(t, gateway.NewSigner("secret").CheckCallback(post))
}

func TestCheckCallback_MissingOrWrongCheck(t *testing.T) {
	signer := gateway.NewSigner("secret")

	post := callbackPost()
	delete(post, "check")
	assert.False(t, signer.CheckCallback(post))

	post = callbackPost()
	post["check"] = "00000000000000000000000000000000"
	assert.False(t, signer.CheckCallback(post))

	assert.False(t, gateway.NewSigner("other").CheckCallback(callbackPost()))
}

func TestCallbackFields_Order(t *testing.T) {
	require.Len(t, gateway.CallbackFields, 18)
	assert.Equal(t, "tid", gateway.CallbackFields[0])
	assert.Equal(t, "resultStr", gateway.CallbackFields[15])
	assert.Equal(t, "version", gateway.CallbackFields[17])
}

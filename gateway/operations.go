package gateway

import (
	"alba/entity"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const (
	pathPayTypes        = "alba/pay_types/"
	pathInput           = "alba/input/"
	pathDetails         = "alba/details/"
	pathRefund          = "alba/refund/"
	pathGateDetails     = "alba/gate_details/"
	pathRecurrentChange = "alba/recurrent_change/"
	pathCardTokenCreate = "create"
)

// PayTypes lists the payment methods available to the service, exactly as the gateway
// returns them in the types field.
// This call is authenticated with a plain md5 of service id and secret, not the request signature.
func (c *Client) PayTypes(ctx context.Context) ([]any, error) {
	check := c.signer.PlainCheck(c.serviceId)
	requestUrl := fmt.Sprintf("%s%s?service_id=%s&check=%s", c.baseUrl, pathPayTypes, url.QueryEscape(c.serviceId), check)

	response, err := c.get(ctx, requestUrl, nil)
	if err != nil {
		return nil, err
	}

	types, ok := response["types"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing types", ErrMalformedResponse)
	}
	return types, nil
}

// InitPayment starts a payment. Bank params and extra fields are merged flat into the request.
func (c *Client) InitPayment(ctx context.Context, request *entity.PaymentRequest) (entity.Response, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: payment request", ErrMissingArgument)
	}
	if err := c.validate.Struct(request); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	fields := Params{
		"cost":         request.Cost,
		"name":         request.Name,
		"email":        request.Email,
		"phone_number": request.Phone,
		"background":   "1",
		"type":         request.PayType,
		"service_id":   c.serviceId,
		"version":      apiVersion,
	}
	if request.OrderId != "" {
		fields["order_id"] = request.OrderId
	}
	if request.Comment != "" {
		fields["comment"] = request.Comment
	}
	for key, value := range request.BankParams {
		fields[key] = value
	}
	if request.Commission != "" {
		fields["commission"] = request.Commission
	}
	if request.CardToken != "" {
		fields["card_token"] = request.CardToken
	}
	if request.RecurrentParams != "" {
		fields["recurrent_params"] = request.RecurrentParams
	}
	for key, value := range request.Extra {
		fields[key] = value
	}
	delete(fields, "check")

	requestUrl := c.baseUrl + pathInput
	if err := c.sign(http.MethodPost, requestUrl, fields); err != nil {
		return nil, err
	}
	return c.post(ctx, requestUrl, fields)
}

// TransactionDetails looks a transaction up by tid, or by order id within the service.
// With neither given it fails with ErrMissingArgument without calling the gateway.
func (c *Client) TransactionDetails(ctx context.Context, tid, orderId string) (entity.Response, error) {
	var params Params
	switch {
	case tid != "":
		params = Params{"tid": tid}
	case orderId != "":
		params = Params{"order_id": orderId, "service_id": c.serviceId}
	default:
		return nil, fmt.Errorf("%w: tid or order_id expected", ErrMissingArgument)
	}
	params["version"] = apiVersion

	requestUrl := c.baseUrl + pathDetails
	if err := c.sign(http.MethodPost, requestUrl, params); err != nil {
		return nil, err
	}
	return c.post(ctx, requestUrl, params)
}

// Refund returns the whole transaction amount, or Amount when set.
func (c *Client) Refund(ctx context.Context, request *entity.RefundRequest) (entity.Response, error) {
	if request == nil || request.Tid == "" {
		return nil, fmt.Errorf("%w: tid expected", ErrMissingArgument)
	}

	fields := Params{
		"version": apiVersion,
		"tid":     request.Tid,
	}
	if request.Amount != "" {
		fields["amount"] = request.Amount
	}
	if request.Test {
		fields["test"] = "1"
	}
	if request.Reason != "" {
		fields["reason"] = request.Reason
	}

	requestUrl := c.baseUrl + pathRefund
	if err := c.sign(http.MethodPost, requestUrl, fields); err != nil {
		return nil, err
	}
	return c.post(ctx, requestUrl, fields)
}

// GateDetails returns information about a gateway identified by its short name.
func (c *Client) GateDetails(ctx context.Context, gate string) (entity.Response, error) {
	if gate == "" {
		return nil, fmt.Errorf("%w: gate expected", ErrMissingArgument)
	}
	params := Params{
		"version":    apiVersion,
		"gate":       gate,
		"service_id": c.serviceId,
	}

	requestUrl := c.baseUrl + pathGateDetails
	if err := c.sign(http.MethodGet, requestUrl, params); err != nil {
		return nil, err
	}
	return c.get(ctx, requestUrl, params)
}

// CheckCallbackSign verifies a payment notification. It never fails; a missing
// or wrong check yields false.
func (c *Client) CheckCallbackSign(post map[string]string) bool {
	return c.signer.CheckCallback(post)
}

// CreateCardToken exchanges card data for a token on the tokenization host.
// The request is not signed; test selects the test host of the connection profile.
func (c *Client) CreateCardToken(ctx context.Context, request *entity.CardTokenRequest, test bool) (*entity.CardTokenResponse, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: card token request", ErrMissingArgument)
	}
	if err := c.validate.Struct(request); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	month := request.ExpMonth
	if len(month) == 1 {
		month = "0" + month
	}

	params := Params{
		"service_id": request.ServiceId,
		"card":       request.Card,
		"exp_month":  month,
		"exp_year":   request.ExpYear,
		"cvc":        request.Cvc,
	}
	if request.CardHolder != "" {
		params["card_holder"] = request.CardHolder
	}

	tokenUrl := c.profile.CardTokenUrl
	if test {
		tokenUrl = c.profile.CardTokenTestUrl
	}

	response, err := c.post(ctx, tokenUrl+pathCardTokenCreate, params)
	if err != nil {
		return nil, err
	}
	return entity.NewCardTokenResponse(response), nil
}

// CancelRecurrentPayment stops the recurrent payments of an order.
func (c *Client) CancelRecurrentPayment(ctx context.Context, orderId string) (entity.Response, error) {
	if orderId == "" {
		return nil, fmt.Errorf("%w: order_id expected", ErrMissingArgument)
	}
	fields := Params{
		"operation":  "cancel",
		"order_id":   orderId,
		"service_id": c.serviceId,
		"version":    apiVersion,
	}

	requestUrl := c.baseUrl + pathRecurrentChange
	if err := c.sign(http.MethodPost, requestUrl, fields); err != nil {
		return nil, err
	}
	return c.post(ctx, requestUrl, fields)
}

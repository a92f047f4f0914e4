// Package gateway is a client for the Alba payment gateway: it signs requests,
// performs one HTTP round trip per operation and maps error codes to typed errors.
package gateway

import (
	"alba/entity"
	"alba/services"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const apiVersion = "2.0"

// Params is the set of fields of one request. The check field is always written by the client.
type Params map[string]string

func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for key, value := range p {
		values.Set(key, value)
	}
	return values
}

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	serviceId   string
	secret      string
	signer      *Signer
	profile     ConnectionProfile
	baseUrl     string
	overrideUrl string
	httpClient  Doer
	logger      services.LogHandler
	validate    *validator.Validate
}

type Option func(*Client)

func WithLogger(logger services.LogHandler) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithHTTPClient(httpClient Doer) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithProfile selects the environment and its base URLs.
func WithProfile(profile ConnectionProfile) Option {
	return func(c *Client) {
		c.profile = profile
	}
}

// WithBaseURL overrides the primary base URL of whichever profile is selected,
// regardless of option order.
func WithBaseURL(baseUrl string) Option {
	return func(c *Client) {
		if baseUrl != "" {
			c.overrideUrl = baseUrl
		}
	}
}

// New creates a client for one service account. Credentials are fixed for the client's lifetime.
func New(serviceId, secret string, opts ...Option) *Client {
	profile := DefaultProfile()
	c := &Client{
		serviceId:  serviceId,
		secret:     secret,
		signer:     NewSigner(secret),
		profile:    profile,
		httpClient: http.DefaultClient,
		logger:     discardLogger{},
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseUrl = c.profile.BaseUrl
	if c.overrideUrl != "" {
		c.baseUrl = c.overrideUrl
	}
	if !strings.HasSuffix(c.baseUrl, "/") {
		c.baseUrl += "/"
	}
	return c
}

// BaseUrl is the primary base URL requests are sent to.
func (c *Client) BaseUrl() string {
	return c.baseUrl
}

func (c *Client) Profile() ConnectionProfile {
	return c.profile
}

// sign computes the request signature and stores it under check.
func (c *Client) sign(method, requestUrl string, params Params) error {
	check, err := c.signer.Sign(method, requestUrl, params)
	if err != nil {
		return fmt.Errorf("sign request: %w", err)
	}
	params["check"] = check
	return nil
}

func (c *Client) get(ctx context.Context, requestUrl string, params Params) (entity.Response, error) {
	return c.request(ctx, http.MethodGet, requestUrl, params)
}

func (c *Client) post(ctx context.Context, requestUrl string, params Params) (entity.Response, error) {
	return c.request(ctx, http.MethodPost, requestUrl, params)
}

func (c *Client) request(ctx context.Context, method, requestUrl string, params Params) (entity.Response, error) {
	c.logger.Debug(fmt.Sprintf("sent %s request to %s with params %s", method, requestUrl, maskParams(params)))

	req, err := newHTTPRequest(ctx, method, requestUrl, params)
	if err != nil {
		return nil, fmt.Errorf("create http request: %w", err)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug(fmt.Sprintf("server unavailable: %v", err))
		return nil, &UnavailableError{Err: err}
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.Error("close response body", err)
		}
	}(response.Body)

	if response.StatusCode != http.StatusOK {
		c.logger.Debug(fmt.Sprintf("server unavailable: %d", response.StatusCode))
		return nil, &UnavailableError{StatusCode: response.StatusCode}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &UnavailableError{StatusCode: response.StatusCode, Err: err}
	}
	c.logger.Debug(fmt.Sprintf("server response: %s", string(body)))

	return decodeResponse(body)
}

func newHTTPRequest(ctx context.Context, method, requestUrl string, params Params) (*http.Request, error) {
	if method == http.MethodGet {
		if len(params) > 0 {
			parsed, err := url.Parse(requestUrl)
			if err != nil {
				return nil, err
			}
			query := parsed.Query()
			for key, value := range params {
				query.Set(key, value)
			}
			parsed.RawQuery = query.Encode()
			requestUrl = parsed.String()
		}
		return http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestUrl, strings.NewReader(params.Values().Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

// decodeResponse parses the body and turns status=error into a *GatewayError.
// A body without a status field is rejected rather than guessed at.
func decodeResponse(body []byte) (entity.Response, error) {
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid utf-8", ErrMalformedResponse)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var response entity.Response
	if err := decoder.Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after json object", ErrMalformedResponse)
	}
	if response == nil {
		return nil, fmt.Errorf("%w: empty object", ErrMalformedResponse)
	}
	if _, ok := response["status"]; !ok {
		return nil, fmt.Errorf("%w: missing status", ErrMalformedResponse)
	}

	if response.Status() == entity.StatusError {
		return nil, newGatewayError(response.String("code"), response.Message())
	}
	return response, nil
}

var maskedKeys = map[string]bool{
	"card":  true,
	"cvc":   true,
	"check": true,
}

func maskParams(params Params) string {
	masked := make(map[string]string, len(params))
	for key, value := range params {
		if maskedKeys[key] {
			value = secret(value)
		}
		masked[key] = value
	}
	return fmt.Sprint(masked)
}

func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}

type discardLogger struct{}

func (discardLogger) Debug(string)        {}
func (discardLogger) Info(string)         {}
func (discardLogger) Warn(string)         {}
func (discardLogger) Error(string, error) {}

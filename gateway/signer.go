package gateway

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"gitee.com/golang-module/dongle"
)

// CallbackFields is the exact order in which notification fields enter the callback checksum.
var CallbackFields = []string{
	"tid",
	"name",
	"comment",
	"partner_id",
	"service_id",
	"order_id",
	"type",
	"cost",
	"income_total",
	"income",
	"partner_income",
	"system_income",
	"command",
	"phone_number",
	"email",
	"resultStr",
	"date_created",
	"version",
}

// keys never included in the request signature
var unsignedKeys = map[string]bool{
	"check": true,
	"mac":   true,
}

type Signer struct {
	secret string
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: secret}
}

// Sign returns base64(HMAC-SHA256(secret, METHOD\nHOST\nPATH\nQUERY)), where QUERY is
// the parameters sorted by key and RFC 3986 encoded.
func Sign(method, requestUrl string, params Params, secret string) (string, error) {
	return NewSigner(secret).Sign(method, requestUrl, params)
}

func (s *Signer) Sign(method, requestUrl string, params Params) (string, error) {
	parsed, err := url.Parse(requestUrl)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	host := parsed.Hostname()
	if port := parsed.Port(); port != "" && port != "80" {
		host = host + ":" + port
	}

	signMethod := http.MethodGet
	if strings.EqualFold(method, http.MethodPost) {
		signMethod = http.MethodPost
	}

	data := strings.Join([]string{signMethod, host, parsed.Path, buildQuery(params)}, "\n")

	encrypted := dongle.Encrypt.FromString(data).ByHmacSha256(s.secret)
	if encrypted.Error != nil {
		return "", fmt.Errorf("hmac sha256: %w", encrypted.Error)
	}
	return encrypted.ToBase64String(), nil
}

// PlainCheck is the digest used by the pay types listing: md5 hex of text followed by the secret.
func (s *Signer) PlainCheck(text string) string {
	return s.md5(text + s.secret)
}

// CheckCallback recomputes the notification checksum and compares it with post["check"].
func (s *Signer) CheckCallback(post map[string]string) bool {
	check, ok := post["check"]
	if !ok || check == "" {
		return false
	}
	var builder strings.Builder
	for _, field := range CallbackFields {
		builder.WriteString(post[field])
	}
	expected := s.md5(builder.String() + s.secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(check)) == 1
}

func (s *Signer) md5(text string) string {
	return dongle.Encrypt.FromString(text).ByMd5().ToHexString()
}

func buildQuery(params Params) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		if unsignedKeys[key] {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, rawUrlEncode(key)+"="+rawUrlEncode(params[key]))
	}
	return strings.Join(pairs, "&")
}

// rawUrlEncode escapes everything outside the RFC 3986 unreserved set; space becomes %20.
func rawUrlEncode(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

package semantria

import (
	"crypto/hmac"
	"crypto/md5"  //nolint:gosec // the service derives its HMAC key from an MD5 of the secret
	"crypto/sha1" //nolint:gosec // HMAC-SHA1 is the service's signature method
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OAuth 1.0 parameter names used by the service.
const (
	oauthConsumerKey     = "oauth_consumer_key"
	oauthNonce           = "oauth_nonce"
	oauthSignatureMethod = "oauth_signature_method"
	oauthTimestamp       = "oauth_timestamp"
	oauthVersion         = "oauth_version"
	oauthSignature       = "oauth_signature"
)

// signer implements the service's two-legged OAuth 1.0 scheme.
//
// The oauth_* parameters are appended to the query, the complete URL is
// percent-encoded and signed with HMAC-SHA1 keyed by the hex MD5 of the
// consumer secret, and the result travels in an "Authorization: OAuth"
// header together with the other oauth_* values.
type signer struct {
	key       string
	secretKey []byte

	// now and nonce are replaced in tests.
	now   func() time.Time
	nonce func() string
}

func newSigner(key, secret string) *signer {
	sum := md5.Sum([]byte(secret)) //nolint:gosec
	return &signer{
		key:       key,
		secretKey: []byte(hex.EncodeToString(sum[:])),
		now:       time.Now,
		nonce:     randomNonce,
	}
}

// randomNonce returns a decimal nonce derived from a random UUID.
func randomNonce() string {
	id := uuid.New()
	var n uint64
	for _, b := range id[:8] {
		n = n<<8 | uint64(b)
	}
	return strconv.FormatUint(n, 10)
}

// sign adds OAuth parameters to req's query and sets the Authorization
// header. It satisfies httpclient.RequestSigner.
func (s *signer) sign(req *http.Request) error {
	params := map[string]string{
		oauthConsumerKey:     s.key,
		oauthNonce:           s.nonce(),
		oauthSignatureMethod: "HMAC-SHA1",
		oauthTimestamp:       strconv.FormatInt(s.now().Unix(), 10),
		oauthVersion:         "1.0",
	}

	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	// Encode sorts by key, which gives the canonical parameter order.
	req.URL.RawQuery = q.Encode()

	signature := s.signature(req.URL.String())
	params[oauthSignature] = url.QueryEscape(signature)

	req.Header.Set("Authorization", authorizationHeader(params))
	return nil
}

// signature computes base64(HMAC-SHA1(md5hex(secret), escape(rawURL))).
func (s *signer) signature(rawURL string) string {
	mac := hmac.New(sha1.New, s.secretKey)
	mac.Write([]byte(url.QueryEscape(rawURL)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// authorizationHeader renders the OAuth header value in a stable order.
func authorizationHeader(params map[string]string) string {
	order := []string{
		oauthConsumerKey,
		oauthNonce,
		oauthSignature,
		oauthSignatureMethod,
		oauthTimestamp,
		oauthVersion,
	}
	parts := make([]string, 0, len(order))
	for _, k := range order {
		parts = append(parts, fmt.Sprintf("%s=%q", k, params[k]))
	}
	return "OAuth " + strings.Join(parts, ", ")
}

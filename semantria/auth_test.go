package semantria

import (
	"crypto/hmac"
	"crypto/md5"  //nolint:gosec
	"crypto/sha1" //nolint:gosec
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSigner() *signer {
	s := newSigner(testKey, testSecret)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	s.nonce = func() string { return "1234567890" }
	return s
}

func TestSigner_Sign(t *testing.T) {
	t.Parallel()

	s := fixedSigner()
	req, err := http.NewRequest(http.MethodGet, "https://api.semantria.com/json/document/42?config_id=cfg", nil)
	require.NoError(t, err)

	require.NoError(t, s.sign(req))

	q := req.URL.Query()
	assert.Equal(t, "cfg", q.Get("config_id"))
	assert.Equal(t, testKey, q.Get(oauthConsumerKey))
	assert.Equal(t, "1234567890", q.Get(oauthNonce))
	assert.Equal(t, "HMAC-SHA1", q.Get(oauthSignatureMethod))
	assert.Equal(t, "1700000000", q.Get(oauthTimestamp))
	assert.Equal(t, "1.0", q.Get(oauthVersion))
	assert.False(t, q.Has(oauthSignature), "signature travels only in the header")

	sum := md5.Sum([]byte(testSecret)) //nolint:gosec
	mac := hmac.New(sha1.New, []byte(hex.EncodeToString(sum[:])))
	mac.Write([]byte(url.QueryEscape(req.URL.String())))
	want := url.QueryEscape(base64.StdEncoding.EncodeToString(mac.Sum(nil)))

	header := req.Header.Get("Authorization")
	assert.True(t, strings.HasPrefix(header, "OAuth "))
	assert.Contains(t, header, `oauth_signature="`+want+`"`)
	assert.Contains(t, header, `oauth_consumer_key="`+testKey+`"`)
	assert.Contains(t, header, `oauth_timestamp="1700000000"`)
}

func TestSigner_SignatureDependsOnURL(t *testing.T) {
	t.Parallel()

	s := fixedSigner()

	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{
			name: "given identical URLs, then signatures match",
			a:    "https://api.semantria.com/json/status",
			b:    "https://api.semantria.com/json/status",
			same: true,
		},
		{
			name: "given different paths, then signatures differ",
			a:    "https://api.semantria.com/json/status",
			b:    "https://api.semantria.com/json/statistics",
		},
		{
			name: "given different queries, then signatures differ",
			a:    "https://api.semantria.com/json/blacklist?config_id=a",
			b:    "https://api.semantria.com/json/blacklist?config_id=b",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if tc.same {
				assert.Equal(t, s.signature(tc.a), s.signature(tc.b))
			} else {
				assert.NotEqual(t, s.signature(tc.a), s.signature(tc.b))
			}
		})
	}
}

func TestRandomNonce(t *testing.T) {
	t.Parallel()

	a, b := randomNonce(), randomNonce()
	assert.NotEqual(t, a, b)
	for _, r := range a {
		assert.True(t, r >= '0' && r <= '9', "nonce %q must be decimal", a)
	}
}

func TestAuthorizationHeader_Order(t *testing.T) {
	t.Parallel()

	got := authorizationHeader(map[string]string{
		oauthVersion:         "1.0",
		oauthTimestamp:       "1",
		oauthSignatureMethod: "HMAC-SHA1",
		oauthSignature:       "sig",
		oauthNonce:           "2",
		oauthConsumerKey:     "key",
	})

	assert.Equal(t,
		`OAuth oauth_consumer_key="key", oauth_nonce="2", oauth_signature="sig", `+
			`oauth_signature_method="HMAC-SHA1", oauth_timestamp="1", oauth_version="1.0"`,
		got,
	)
}

package semantria

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kroma-labs/semantria-go/httpclient"
)

const (
	testKey    = "consumer-key"
	testSecret = "consumer-secret"
)

// newTestSession builds a Session whose requests go to mock.
func newTestSession(t *testing.T, mock *httpclient.MockTransport, opts ...Option) *Session {
	t.Helper()

	opts = append([]Option{WithHTTPOptions(httpclient.WithMockTransport(mock))}, opts...)
	s, err := New(testKey, testSecret, opts...)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		key       string
		secret    string
		opts      []Option
		wantField string
	}{
		{
			name:   "given key and secret, then session is created",
			key:    testKey,
			secret: testSecret,
		},
		{
			name:      "given empty key, then configuration error names key",
			key:       "",
			secret:    testSecret,
			wantField: "key",
		},
		{
			name:      "given blank secret, then configuration error names secret",
			key:       testKey,
			secret:    "   ",
			wantField: "secret",
		},
		{
			name:      "given unknown format, then configuration error names format",
			key:       testKey,
			secret:    testSecret,
			opts:      []Option{WithFormat("yaml")},
			wantField: "format",
		},
		{
			name:      "given relative host, then configuration error names host",
			key:       testKey,
			secret:    testSecret,
			opts:      []Option{WithHost("api.semantria.com")},
			wantField: "host",
		},
		{
			name:      "given empty api version, then configuration error names apiversion",
			key:       testKey,
			secret:    testSecret,
			opts:      []Option{WithAPIVersion("")},
			wantField: "apiversion",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, err := New(tc.key, tc.secret, tc.opts...)

			if tc.wantField == "" {
				require.NoError(t, err)
				assert.NotNil(t, s)
				return
			}

			require.Error(t, err)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrConfiguration)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.wantField, cfgErr.Field)
		})
	}
}

func TestSession_ApplicationName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{
			name: "given no application name, then header starts with the runtime",
			want: "Go/" + SDKVersion + "/json",
		},
		{
			name: "given application name and xml, then header is fully qualified",
			opts: []Option{WithApplicationName("review-miner"), WithFormat(FormatXML)},
			want: "review-miner/Go/" + SDKVersion + "/xml",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, "")
			s := newTestSession(t, mock, tc.opts...)

			assert.Equal(t, tc.want, s.ApplicationName())

			_, err := s.GetStatus().Do(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, mock.LastRequest().Header.Get("x-app-name"))
		})
	}
}

func TestSession_Headers(t *testing.T) {
	t.Parallel()

	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, "")
	s := newTestSession(t, mock, WithFormat(FormatXML), WithAPIVersion("4.1"))

	_, err := s.GetStatus().Do(context.Background())
	require.NoError(t, err)

	req := mock.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "4.1", req.Header.Get("x-api-version"))
	assert.Equal(t, "application/xml", req.Header.Get("Accept"))
	assert.Equal(t, "semantria-go/"+SDKVersion, req.Header.Get("User-Agent"))
	assert.True(t, strings.HasPrefix(req.Header.Get("Authorization"), "OAuth "))
}

func TestSession_GetStatusEndToEnd(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	s, err := New(testKey, testSecret, WithHost(server.URL+"/"))
	require.NoError(t, err)

	res, err := s.GetStatus().Do(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, map[string]any{"status": "ok"}, res.Data)
	assert.Equal(t, "/json/status", gotPath)
	assert.Contains(t, gotAuth, `oauth_consumer_key="`+testKey+`"`)
	assert.Equal(t, []string{testKey}, gotQuery["oauth_consumer_key"])
	assert.Equal(t, []string{"HMAC-SHA1"}, gotQuery["oauth_signature_method"])
	assert.Equal(t, []string{"1.0"}, gotQuery["oauth_version"])
}

func TestSession_Concurrent(t *testing.T) {
	t.Parallel()

	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, `{"status":"ok"}`)
	s := newTestSession(t, mock)

	const n = 20
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := s.GetStatus().Do(context.Background())
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}
	assert.Equal(t, n, mock.RequestCount())
}

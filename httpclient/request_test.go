package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBuilder_BuildURL(t *testing.T) {
	type args struct {
		baseURL string
		path    string
		query   map[string]string
	}

	tests := []struct {
		name    string
		args    args
		wantURL string
	}{
		{
			name:    "given base URL and relative path, then joins with one slash",
			args:    args{baseURL: "https://api.semantria.com/json", path: "status"},
			wantURL: "https://api.semantria.com/json/status",
		},
		{
			name:    "given trailing and leading slashes, then joins with one slash",
			args:    args{baseURL: "https://api.semantria.com/json/", path: "/status"},
			wantURL: "https://api.semantria.com/json/status",
		},
		{
			name:    "given no base URL, then path is used as is",
			args:    args{path: "https://api.semantria.com/xml/status"},
			wantURL: "https://api.semantria.com/xml/status",
		},
		{
			name: "given query parameters, then they are encoded in key order",
			args: args{
				baseURL: "https://api.semantria.com/json",
				path:    "document/processed",
				query:   map[string]string{"job_id": "j 1", "config_id": "c"},
			},
			wantURL: "https://api.semantria.com/json/document/processed?config_id=c&job_id=j+1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := New(WithBaseURL(tt.args.baseURL))

			rb := client.Request("Test").Path(tt.args.path).Queries(tt.args.query)
			got, err := rb.buildURL()

			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, got)
		})
	}
}

func TestRequestBuilder_Send(t *testing.T) {
	t.Parallel()

	var (
		gotMethod      string
		gotPath        string
		gotQuery       string
		gotBody        string
		gotContentType string
		gotHeader      string
		gotDefault     string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotBody = string(body)
		gotContentType = r.Header.Get("Content-Type")
		gotHeader = r.Header.Get("X-Request")
		gotDefault = r.Header.Get("x-app-name")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := New(
		WithBaseURL(server.URL+"/json"),
		WithHeader("x-app-name", "Go/1.0.0/json"),
	)

	resp, err := client.Request("QueueDocument").
		Query("config_id", "cfg").
		Header("X-Request", "abc").
		Body([]byte(`{"id":"1"}`), "application/json").
		Send(context.Background(), http.MethodPost, "document")
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/json/document", gotPath)
	assert.Equal(t, "config_id=cfg", gotQuery)
	assert.JSONEq(t, `{"id":"1"}`, gotBody)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "abc", gotHeader)
	assert.Equal(t, "Go/1.0.0/json", gotDefault)
}

func TestRequestBuilder_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		send   func(rb *RequestBuilder) (*Response, error)
		method string
	}{
		{"given Get, then sends GET", func(rb *RequestBuilder) (*Response, error) { return rb.Get(context.Background(), "/x") }, http.MethodGet},
		{"given Post, then sends POST", func(rb *RequestBuilder) (*Response, error) { return rb.Post(context.Background(), "/x") }, http.MethodPost},
		{"given Put, then sends PUT", func(rb *RequestBuilder) (*Response, error) { return rb.Put(context.Background(), "/x") }, http.MethodPut},
		{"given Delete, then sends DELETE", func(rb *RequestBuilder) (*Response, error) { return rb.Delete(context.Background(), "/x") }, http.MethodDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := NewMockTransport().StubResponse(http.StatusOK, "")
			client := New(WithBaseURL(mockBaseURL), WithMockTransport(mock))

			_, err := tt.send(client.Request("Test"))
			require.NoError(t, err)
			assert.Equal(t, tt.method, mock.LastRequest().Method)
		})
	}
}

func TestRequestBuilder_Signer(t *testing.T) {
	t.Parallel()

	t.Run("given signer, then it sees the final URL and can extend it", func(t *testing.T) {
		t.Parallel()

		mock := NewMockTransport().StubResponse(http.StatusOK, "")
		var seen string
		client := New(
			WithBaseURL(mockBaseURL),
			WithMockTransport(mock),
			WithSigner(func(req *http.Request) error {
				seen = req.URL.String()
				q := req.URL.Query()
				q.Set("oauth_nonce", "1")
				req.URL.RawQuery = q.Encode()
				return nil
			}),
		)

		resp, err := client.Request("GetBlacklist").Query("config_id", "c").Get(context.Background(), "blacklist")
		require.NoError(t, err)

		assert.Equal(t, mockBaseURL+"/blacklist?config_id=c", seen)
		assert.Equal(t, "config_id=c&oauth_nonce=1", mock.LastRequest().URL.RawQuery)
		assert.Equal(t, "1", resp.SentRequest().URL.Query().Get("oauth_nonce"))
	})

	t.Run("given failing signer, then nothing is sent", func(t *testing.T) {
		t.Parallel()

		mock := NewMockTransport().StubResponse(http.StatusOK, "")
		signErr := errors.New("no credentials")
		client := New(
			WithBaseURL(mockBaseURL),
			WithMockTransport(mock),
			WithSigner(func(*http.Request) error { return signErr }),
		)

		_, err := client.Request("GetStatus").Get(context.Background(), "status")
		require.ErrorIs(t, err, signErr)
		assert.Equal(t, 0, mock.RequestCount())
	})
}

func TestRequestBuilder_NonSuccessIsNotAnError(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport().StubResponse(http.StatusUnauthorized, "Unauthorized")
	client := New(WithBaseURL(mockBaseURL), WithMockTransport(mock))

	resp, err := client.Request("GetStatus").Get(context.Background(), "status")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", resp.String())
}

func TestRequestBuilder_InvalidURL(t *testing.T) {
	t.Parallel()

	client := New(WithBaseURL("://bad"))

	_, err := client.Request("GetStatus").Query("a", "b").Get(context.Background(), "status")
	require.Error(t, err)
}

func TestOperationFromContext(t *testing.T) {
	ctx := withOperation(context.Background(), "GetDocument")
	assert.Equal(t, "GetDocument", operationFromContext(ctx))

	assert.Empty(t, operationFromContext(context.Background()))
	assert.Equal(t, context.Background(), withOperation(context.Background(), ""))
}

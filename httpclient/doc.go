// Package httpclient is the transport layer of the Semantria client: an
// instrumented HTTP client with a fluent request builder.
//
// # Quick Start
//
//	client := httpclient.New(
//	    httpclient.WithBaseURL("https://api.semantria.com/json"),
//	    httpclient.WithServiceName("semantria"),
//	)
//
//	resp, err := client.Request("GetStatus").Get(ctx, "/status")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(resp.StatusCode, resp.String())
//
// Bodies are passed already encoded, together with their content type, so a
// single client serves both the JSON and the XML flavour of the API:
//
//	resp, err := client.Request("QueueDocument").
//	    Query("config_id", configID).
//	    Body(payload, "application/xml").
//	    Post(ctx, "/document")
//
// A returned error means no response arrived. Non-2xx responses come back
// with a nil error; check Response.IsSuccess.
//
// # Signing
//
// WithSigner installs a RequestSigner that sees the final URL and headers of
// every request immediately before dispatch:
//
//	client := httpclient.New(
//	    httpclient.WithSigner(func(req *http.Request) error {
//	        req.Header.Set("Authorization", sign(req.URL))
//	        return nil
//	    }),
//	)
//
// # Observability
//
// Every request produces a client span named "HTTP {METHOD}" carrying the
// operation name passed to Client.Request, and records:
//   - http.client.request.duration (histogram)
//   - http.client.request.body.size, http.client.response.body.size (histograms)
//   - http.client.active_requests (up/down counter)
//   - http.client.request.error (counter, by http.client.operation and
//     error.type; the type is the ClassifyError kind for transport failures
//     and the status code for rejected calls)
//   - http.client.rate_limited (counter, by http.client.operation)
//
// Full URLs are not recorded on spans because signed query strings carry
// credentials.
//
// # Debugging
//
//	client := httpclient.New(
//	    httpclient.WithDebug(true),        // zerolog debug lines per request/response
//	    httpclient.WithGenerateCurl(true), // resp.CurlCommand()
//	)
//
// Both outputs mask OAuth signatures and Authorization headers.
//
// # Rate Limiting
//
// Rate limiting is off by default. PerMinute converts a subscription quota:
//
//	client := httpclient.New(httpclient.WithRateLimit(httpclient.PerMinute(120)))
//
// # Testing
//
// MockTransport stubs responses without a network:
//
//	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, `{"status":"ok"}`)
//	client := httpclient.New(httpclient.WithMockTransport(mock))
package httpclient

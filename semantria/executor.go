package semantria

import (
	"context"

	"github.com/kroma-labs/semantria-go/httpclient"
)

// execute runs one call through the pipeline on the calling goroutine:
//
//	encode body -> OnRequest -> dispatch -> status check -> OnResponse
//	-> decode -> OnAfterResponse
//
// Every failure fires OnError exactly once before it is returned.
func (s *Session) execute(ctx context.Context, d *Descriptor) (*Result, error) {
	logger := s.logger.With().
		Str("operation", d.Operation).
		Str("convention", d.Convention.String()).
		Logger()

	res, err := s.roundTrip(ctx, d)
	if err != nil {
		logger.Warn().Err(err).Msg("semantria call failed")
		s.hooks.OnError(err)
		return nil, err
	}

	logger.Debug().Int("status", res.StatusCode).Msg("semantria call succeeded")
	return res, nil
}

func (s *Session) roundTrip(ctx context.Context, d *Descriptor) (*Result, error) {
	rb := s.client.Request(d.Operation).Queries(d.query())

	if d.Body != nil {
		data, err := s.format.encodeBody(d.Body, d.XMLRoot, d.XMLItem)
		if err != nil {
			return nil, &SerializationError{
				Op:        d.Operation,
				Format:    s.format,
				Direction: "encode",
				Err:       err,
			}
		}
		rb.Body(data, s.format.ContentType())
	}

	s.hooks.OnRequest(d)

	resp, err := rb.Send(ctx, d.Method, d.Path)
	if err != nil {
		return nil, &NetworkError{
			Op:   d.Operation,
			Kind: httpclient.ClassifyError(err),
			Err:  err,
		}
	}

	if !resp.IsSuccess() {
		apiErr := &APIError{
			Op:         d.Operation,
			StatusCode: resp.StatusCode,
			Body:       resp.Body(),
		}
		// Error bodies are usually plain text; Data stays nil then.
		apiErr.Data, _ = s.format.decodeBody(resp.Body())
		return nil, apiErr
	}

	s.hooks.OnResponse(&RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body(),
	})

	data, err := s.format.decodeBody(resp.Body())
	if err != nil {
		return nil, &SerializationError{
			Op:        d.Operation,
			Format:    s.format,
			Direction: "decode",
			Err:       err,
		}
	}

	res := &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Data:       data,
	}
	if d.AfterResponseHook {
		s.hooks.OnAfterResponse(res)
	}
	return res, nil
}

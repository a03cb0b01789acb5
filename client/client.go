package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/jsonapi"
	"github.com/a-h/summaryform/models"
)

// maxErrorBodySize limits how much of a failed response is read while looking for an error message.
const maxErrorBodySize = 64 * 1024

func New(baseURL, apiKey string) Client {
	return Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

type Client struct {
	baseURL string
	apiKey  string
}

// StatusError is returned when the summarization API responds with a non-2xx status.
// Message holds the "error" field of the response body, if there was one.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("summarize: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("summarize: status %d: %s", e.Status, e.Message)
}

func (c Client) SummarizePost(ctx context.Context, req models.SummarizePostRequest) (resp models.SummarizePostResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("summarize").String()
	if err != nil {
		return resp, fmt.Errorf("failed to create summarize URL: %w", err)
	}
	buf, err := json.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return resp, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", c.apiKey)
	}
	res, err := jsonapi.Raw(httpReq, jsonapi.WithRequestHeader("Content-Type", "application/json"))
	if err != nil {
		return resp, fmt.Errorf("failed to perform HTTP request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return resp, newStatusError(res)
	}
	if err = json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return resp, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp, nil
}

func newStatusError(res *http.Response) *StatusError {
	se := &StatusError{Status: res.StatusCode}
	body, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBodySize))
	if err != nil {
		return se
	}
	var er models.ErrorResponse
	if json.Unmarshal(body, &er) == nil {
		se.Message = er.Error
	}
	return se
}

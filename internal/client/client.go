// Package client wraps the subscribe round trip for the form page and for
// programmatic callers. It mirrors the browser-side contract: validate
// locally first, one POST, no retry, and every outcome is a Result rather
// than an error escaping the boundary.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"

	"coffee-subscribe/internal/catalog"
	"coffee-subscribe/internal/common/errors"
	"coffee-subscribe/internal/common/logger"
	"coffee-subscribe/internal/subscription"
)

// Selection is the client-held form state. The three ids must resolve to
// catalog entries; an unresolved id is a programming error, not user input.
type Selection struct {
	RoastID     string
	SizeID      string
	FrequencyID string
	Email       string
}

// Client submits selections to the subscription endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
	inFlight   atomic.Bool
}

func New(baseURL string, httpClient *http.Client, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     log.WithFields(map[string]interface{}{"component": "submit-client"}),
	}
}

// BuildRequest resolves the selection against the catalogs and produces the
// wire payload with display labels and the quoted price. Panics on unknown
// catalog ids.
func BuildRequest(sel Selection) *subscription.Request {
	roast, ok := catalog.RoastByID(sel.RoastID)
	if !ok {
		panic(fmt.Sprintf("client: unknown roast id %q", sel.RoastID))
	}
	size := catalog.MustSize(sel.SizeID)
	freq := catalog.MustFrequency(sel.FrequencyID)

	quote, err := catalog.Quote(sel.SizeID, sel.FrequencyID)
	if err != nil {
		panic(fmt.Sprintf("client: %v", err))
	}

	return &subscription.Request{
		Email:     sel.Email,
		Roast:     roast.Name,
		Size:      size.Label,
		Frequency: freq.Label,
		Price:     subscription.NewPrice(quote),
	}
}

// Submit validates the selection, issues a single POST, and interprets the
// response. Invalid email never reaches the network. A transport failure or
// an unparseable response body yields the generic network-error result; this
// method never returns an error.
//
// At most one submission may be in flight; a second attempt while one is
// pending is suppressed.
func (c *Client) Submit(ctx context.Context, sel Selection) *subscription.Result {
	if !c.inFlight.CompareAndSwap(false, true) {
		return &subscription.Result{OK: false, Error: "Submission already in progress."}
	}
	defer c.inFlight.Store(false)

	if valErr := subscription.ValidateEmail(sel.Email); valErr != nil {
		return &subscription.Result{OK: false, Error: valErr.UserMessage()}
	}

	req := BuildRequest(sel)

	body, err := json.Marshal(req)
	if err != nil {
		return c.networkError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/subscribe", bytes.NewReader(body))
	if err != nil {
		return c.networkError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.networkError(err)
	}
	defer resp.Body.Close()

	var result subscription.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return c.networkError(err)
	}

	if !result.OK && result.Error == "" {
		result.Error = errors.MsgServerError
	}
	return &result
}

func (c *Client) networkError(err error) *subscription.Result {
	c.logger.WithError(err).Warn("submission transport failure", nil)
	return &subscription.Result{OK: false, Error: errors.MsgNetworkError}
}

// ConfirmURL builds the confirmation handoff: the submitted fields and the
// email status travel as query parameters so the confirmation view can
// recover them without any shared store.
func ConfirmURL(sel Selection, req *subscription.Request, res *subscription.Result) string {
	q := url.Values{}
	q.Set("roast", req.Roast)
	q.Set("size", req.Size)
	q.Set("frequency", req.Frequency)
	q.Set("price", req.Price.String())
	q.Set("email", sel.Email)
	if res != nil && res.EmailStatus != "" {
		q.Set("emailStatus", res.EmailStatus)
	}
	return "/confirm?" + q.Encode()
}

// Package mail defines the email dispatch boundary of the subscription
// pipeline. A Dispatcher takes one batch (customer confirmation plus company
// notification), performs or simulates delivery in a single attempt, and
// returns the resulting message ids. No retry happens at this layer.
package mail

import "context"

// Message is one rendered email payload.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// Batch holds the two messages produced for one submission.
type Batch struct {
	Customer Message
	Company  Message
}

// Receipt is the outcome of a successful dispatch.
type Receipt struct {
	CustomerMessageID string
	CompanyMessageID  string
}

// Dispatcher performs a single dispatch attempt for a batch.
type Dispatcher interface {
	// Dispatch sends or simulates both messages. Either both ids are
	// returned or an error; there is no partial success surface.
	Dispatch(ctx context.Context, batch Batch) (*Receipt, error)

	// Mode reports the dispatch mode ("demo" or "ses") for the response
	// body and logs.
	Mode() string
}

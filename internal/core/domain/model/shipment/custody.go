package shipment

import (
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

// UnknownLocation is recorded until scanners report a position.
const UnknownLocation = "unknown"

const (
	CustodyToDriver   = "custody transferred to driver"
	CustodyToReceiver = "custody transferred to receiver"
)

// CustodyRecord is one entry of a shipment's custody log: who took the
// shipment, when, where, and in which direction.
type CustodyRecord struct {
	Action   string    `json:"action"`
	Actor    string    `json:"actor"`
	At       time.Time `json:"at"`
	Location string    `json:"location"`
	From     string    `json:"from"`
	To       string    `json:"to"`
}

// Message is the human-readable confirmation returned to the scanner.
func (r CustodyRecord) Message() string {
	return r.Actor + ": " + r.Action
}

func newCustodyRecord(action, actor string, at time.Time, from, to Status) (CustodyRecord, error) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return CustodyRecord{}, errs.NewValueIsRequiredError("actor")
	}
	if at.IsZero() {
		return CustodyRecord{}, errs.NewValueIsRequiredError("at")
	}

	return CustodyRecord{
		Action:   action,
		Actor:    actor,
		At:       at.UTC(),
		Location: UnknownLocation,
		From:     from.String(),
		To:       to.String(),
	}, nil
}

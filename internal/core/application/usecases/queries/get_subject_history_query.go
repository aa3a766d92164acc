package queries

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetSubjectHistoryQueryIsNotConstructed = errors.New(
	"GetSubjectHistoryQuery must be created via NewGetSubjectHistoryQuery constructor",
)

// GetSubjectHistoryQuery replays the event log of one subject: an order id,
// a shipment id or a sku.
type GetSubjectHistoryQuery struct {
	subjectID string

	guard guard.ConstructorGuard
}

func NewGetSubjectHistoryQuery(subjectID string) (GetSubjectHistoryQuery, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return GetSubjectHistoryQuery{}, errs.NewValueIsRequiredError("subject id")
	}

	return GetSubjectHistoryQuery{
		subjectID: subjectID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetSubjectHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetSubjectHistoryQueryIsNotConstructed)
}

func (q GetSubjectHistoryQuery) SubjectID() string {
	return q.subjectID
}

type EventView struct {
	ID         kernel.UUID
	Type       string
	Sequence   int64
	OccurredAt time.Time
	Payload    map[string]any
}

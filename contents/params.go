package contents

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Submission tells Build how to treat fields missing from the params.
type Submission int

const (
	// FreshSubmission applies only the fields present in the params.
	FreshSubmission Submission = iota
	// ReturningFromConfirmation restores the whole form from the params,
	// including the brand selection, as the user left it on the confirm step.
	ReturningFromConfirmation
)

// ContentParams are the submitted content fields. Nil means not submitted;
// a zero time clears the field.
type ContentParams struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Body        *string    `json:"body,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	TargetFlag  *string    `json:"target_flag,omitempty"`
	ForCustomer *bool      `json:"for_customer,omitempty"`
	ForEmployee *bool      `json:"for_employee,omitempty"`
}

type Params struct {
	Content    ContentParams `json:"content"`
	CompanyID  *uuid.UUID    `json:"company_id,omitempty"`
	BrandIDs   *string       `json:"brand_ids,omitempty"`
	RankIDs    *string       `json:"rank_ids,omitempty"`
	Submission Submission    `json:"-"`
}

func (p Params) returning() bool {
	return p.Submission == ReturningFromConfirmation
}

// StringParam is a convenience for building Params by hand.
func StringParam(s string) *string {
	return &s
}

func JoinIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

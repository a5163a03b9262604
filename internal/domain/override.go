package domain

import (
	"time"
)

// OverrideAction is what an operator did to a recommendation.
type OverrideAction string

const (
	// OverrideApprove force-includes the recommendation for the user, even
	// when automatic scoring would exclude it. Approve wins over a
	// conflicting flag for the same recommendation id.
	OverrideApprove OverrideAction = "approve"

	// OverrideFlag force-excludes the recommendation for the user. A reason
	// is mandatory.
	OverrideFlag OverrideAction = "flag"
)

// OperatorOverride is an externally managed quality-control record. The core
// reads these; writes happen through a separate operator surface.
type OperatorOverride struct {
	ID                 string
	UserID             string
	RecommendationID   string // catalog item id
	RecommendationType string // "education" or "offer"
	Action             OverrideAction
	Reason             string // required for flag
	OperatorID         string
	CreatedAt          time.Time
}

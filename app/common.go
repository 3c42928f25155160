package app

import (
	"fragrancerater/domain/core"
	"fragrancerater/domain/reviewer"
)

// reviewerFromID builds a minimal Reviewer for BuildProfile calls where
// the service only has the id on hand; the aggregator only reads
// reviewer.ID.
func reviewerFromID(id core.ReviewerID) reviewer.Reviewer {
	return reviewer.Reviewer{ID: id}
}

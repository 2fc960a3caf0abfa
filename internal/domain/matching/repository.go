package matching

import "context"

// CandidateRetriever is the read port against the relationship graph. The
// only hard filter applied at this stage is the risk threshold; every other
// criterion is soft and handled by scoring. Implementations must return a
// retrieval error (not an empty slice) when the store cannot be searched, so
// callers can tell "no matches" from "could not search".
type CandidateRetriever interface {
	Retrieve(ctx context.Context, criteria *Criteria) ([]VendorCandidate, error)
}

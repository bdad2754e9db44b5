package domain

// ErrorKind classifies a per-domain failure inside an OperationResult.
type ErrorKind string

const (
	// ErrorKindValidation marks entries rejected locally before dispatch.
	ErrorKindValidation ErrorKind = "validation"

	// ErrorKindNotFound marks entries the remote service could not find.
	ErrorKindNotFound ErrorKind = "not_found"

	// ErrorKindRemote marks entries the remote service rejected for any
	// other reason.
	ErrorKindRemote ErrorKind = "remote"
)

// Outcome is the coarse category of a completed operation, rendered by
// the presentation layer as success, partial success or hard failure.
type Outcome int

const (
	// OutcomeCompleted means every submitted domain was applied.
	OutcomeCompleted Outcome = iota

	// OutcomePartiallyCompleted means some domains were applied and some
	// failed.
	OutcomePartiallyCompleted

	// OutcomeFailed means no domain was applied.
	OutcomeFailed
)

// String returns a short label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomePartiallyCompleted:
		return "partially completed"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OperationResult is the per-domain outcome of a bulk mutation.
// Partial failure is a first-class return value, never an error: every
// mutating operation accounts for each submitted domain under exactly
// one of Succeeded or Failed.
type OperationResult struct {
	// Succeeded lists domains that were applied, in submission order.
	Succeeded []Domain

	// Failed maps each rejected domain to the kind of failure.
	Failed map[Domain]ErrorKind
}

// NewOperationResult returns an empty result.
func NewOperationResult() *OperationResult {
	return &OperationResult{
		Failed: make(map[Domain]ErrorKind),
	}
}

// Succeed records d as applied.
func (r *OperationResult) Succeed(d Domain) {
	r.Succeeded = append(r.Succeeded, d)
}

// Fail records d as rejected with the given kind.
func (r *OperationResult) Fail(d Domain, kind ErrorKind) {
	if r.Failed == nil {
		r.Failed = make(map[Domain]ErrorKind)
	}
	r.Failed[d] = kind
}

// Merge folds a remote result into r. Failures already recorded on r
// take precedence over remote entries for the same domain: an entry
// rejected by local validation was never dispatched, so no remote cause
// can apply to it.
func (r *OperationResult) Merge(remote *OperationResult) {
	if remote == nil {
		return
	}
	for _, d := range remote.Succeeded {
		if _, failed := r.Failed[d]; failed {
			continue
		}
		r.Succeed(d)
	}
	for d, kind := range remote.Failed {
		if _, failed := r.Failed[d]; failed {
			continue
		}
		r.Fail(d, kind)
	}
}

// Outcome categorizes the result. An empty result counts as completed.
func (r *OperationResult) Outcome() Outcome {
	switch {
	case len(r.Failed) == 0:
		return OutcomeCompleted
	case len(r.Succeeded) == 0:
		return OutcomeFailed
	default:
		return OutcomePartiallyCompleted
	}
}

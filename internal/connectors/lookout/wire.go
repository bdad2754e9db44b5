package lookout

import (
	"time"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
)

// Element upload modes and actions understood by the vendor API.
const (
	uploadTypeFull        = "Full"
	uploadTypeIncremental = "Incremental"

	actionAdd    = "ADD"
	actionDelete = "DELETE"
)

// feedPayload is the vendor's feed representation.
type feedPayload struct {
	FeedID             string    `json:"feedId"`
	FeedType           string    `json:"feedType"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	ElementsCount      int       `json:"elementsCount"`
	ElementsUploadedAt time.Time `json:"elementsUploadedAt"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (p feedPayload) toDomain() domain.Feed {
	return domain.Feed{
		ID:          p.FeedID,
		Type:        domain.FeedType(p.FeedType),
		Title:       p.Title,
		Description: p.Description,
		DomainCount: p.ElementsCount,
		UpdatedAt:   p.ElementsUploadedAt,
		CreatedAt:   p.CreatedAt,
	}
}

// createFeedRequest is the body of a feed creation call.
type createFeedRequest struct {
	FeedType    string `json:"feedType"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// elementsPage is one page of a feed's element list.
type elementsPage struct {
	Elements      []string `json:"elements"`
	NextPageToken string   `json:"nextPageToken"`
}

// elementChange is one entry of a bulk element upload.
type elementChange struct {
	Action string `json:"action"`
	Domain string `json:"domain"`
}

// elementsUpload is the body of a bulk element upload.
type elementsUpload struct {
	Elements []elementChange `json:"elements"`
}

// rejectedElement is one entry the vendor refused.
type rejectedElement struct {
	Domain string `json:"domain"`
	Reason string `json:"reason"`
}

// elementsResult is the vendor's partial-failure response to a bulk
// element upload.
type elementsResult struct {
	Accepted []string          `json:"accepted"`
	Rejected []rejectedElement `json:"rejected"`
}

// toResult maps the vendor response onto an OperationResult. Some
// deployments acknowledge a fully accepted upload with an empty body;
// in that case every submitted domain counts as succeeded.
func (r elementsResult) toResult(submitted []domain.Domain) *domain.OperationResult {
	result := domain.NewOperationResult()

	if len(r.Accepted) == 0 && len(r.Rejected) == 0 {
		for _, d := range submitted {
			result.Succeed(d)
		}
		return result
	}

	for _, d := range r.Accepted {
		result.Succeed(domain.Domain(d))
	}
	for _, rej := range r.Rejected {
		kind := domain.ErrorKindRemote
		if rej.Reason == "not_found" {
			kind = domain.ErrorKindNotFound
		}
		result.Fail(domain.Domain(rej.Domain), kind)
	}
	return result
}

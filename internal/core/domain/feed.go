package domain

import (
	"fmt"
	"time"
)

// FeedType identifies the upload format of a threat feed.
type FeedType string

// FeedTypeCSV is the only type the vendor API currently accepts.
const FeedTypeCSV FeedType = "CSV"

// ValidFeedTypes returns the feed types accepted by the vendor API.
func ValidFeedTypes() []FeedType {
	return []FeedType{FeedTypeCSV}
}

// Valid reports whether t is a feed type the vendor accepts.
func (t FeedType) Valid() bool {
	for _, v := range ValidFeedTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// Vendor-enforced bounds on feed title and description length.
const (
	MinFieldLength = 8
	MaxFieldLength = 255
)

// Feed represents a threat feed owned by the remote service.
// Instances are transient: they are cached only for the duration of a
// single operation and never persisted locally.
type Feed struct {
	// ID is the opaque server-assigned feed identifier.
	// Once obtained it is immutable for the session.
	ID string

	// Type is the feed upload format.
	Type FeedType

	// Title is the human-readable feed name.
	Title string

	// Description explains what the feed contains.
	Description string

	// DomainCount is the number of domains the feed currently holds.
	DomainCount int

	// UpdatedAt is when the feed's domain list last changed.
	UpdatedAt time.Time

	// CreatedAt is when the feed was created.
	CreatedAt time.Time
}

// ValidateNewFeed checks the locally enforced vendor constraints for a
// feed about to be created. It fails before any network round trip.
func ValidateNewFeed(feedType FeedType, title, description string) error {
	if !feedType.Valid() {
		return fmt.Errorf("%w: feed type %q (allowed: %v)", ErrInvalidInput, string(feedType), ValidFeedTypes())
	}
	if l := len(title); l < MinFieldLength || l > MaxFieldLength {
		return fmt.Errorf("%w: title must be between %d and %d characters", ErrInvalidInput, MinFieldLength, MaxFieldLength)
	}
	if l := len(description); l < MinFieldLength || l > MaxFieldLength {
		return fmt.Errorf("%w: description must be between %d and %d characters", ErrInvalidInput, MinFieldLength, MaxFieldLength)
	}
	return nil
}

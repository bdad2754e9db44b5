package domain

// Page is one bounded, ordered slice of a feed's domain list.
// The remote service never guarantees a full feed in a single response;
// callers must keep requesting pages until HasMore reports false.
type Page struct {
	// Domains are the entries of this page, in server order.
	Domains []Domain

	// NextPageToken is the opaque cursor for the next page.
	// Empty when this is the last page.
	NextPageToken string
}

// HasMore reports whether another page must be requested.
func (p *Page) HasMore() bool {
	return p.NextPageToken != ""
}

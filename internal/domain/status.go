package domain

// Status is one of the five fixed lifecycle stages of a job application.
// This is the single source of truth for the status vocabulary; every other
// layer (handlers, persistence, the UI) must go through it instead of keeping
// its own literal list.
type Status string

const (
	StatusWishlist  Status = "Wishlist"
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// DefaultStatus is assigned to newly created records and to records read from
// storage with a missing or unrecognized status.
const DefaultStatus = StatusWishlist

// Statuses lists all valid statuses in their fixed presentation order.
// Callers must not mutate the returned slice's backing array.
var Statuses = []Status{
	StatusWishlist,
	StatusApplied,
	StatusInterview,
	StatusOffer,
	StatusRejected,
}

// Valid reports whether s is a member of the fixed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusWishlist, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// ParseStatus coerces raw text into a Status, falling back to DefaultStatus
// for anything outside the set. The ok result tells the caller whether the
// input was recognized.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	if s.Valid() {
		return s, true
	}
	return DefaultStatus, false
}

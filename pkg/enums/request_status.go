package enums

import "fmt"

// RequestStatus tracks the review outcome of an order request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
)

var validRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusApproved,
	RequestStatusRejected,
}

// String implements fmt.Stringer.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RequestStatus.
func (s RequestStatus) IsValid() bool {
	for _, candidate := range validRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRequestStatus converts raw input into a RequestStatus.
func ParseRequestStatus(value string) (RequestStatus, error) {
	switch normalizeKey(value) {
	case "pending":
		return RequestStatusPending, nil
	case "approved":
		return RequestStatusApproved, nil
	case "rejected":
		return RequestStatusRejected, nil
	}
	return "", fmt.Errorf("invalid request status %q", value)
}

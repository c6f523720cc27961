package booking

import "fmt"

// Status is the lifecycle state of a booking. A booking is created WAITING
// and moved to APPROVED or REJECTED by the item's owner.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// StatusForApproval maps the owner's verdict to the target status.
func StatusForApproval(approve bool) Status {
	if approve {
		return StatusApproved
	}
	return StatusRejected
}

package domain

import (
	"errors"
	"strings"
)

// Decision is the outcome an approver can apply to a pending request.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

var ErrInvalidDecision = errors.New("decision must be approved or rejected")

// ParseDecision accepts both "approved" and "Approved" spellings; the
// stored form is always lower case.
func ParseDecision(raw string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "approved", "approve":
		return DecisionApproved, nil
	case "rejected", "reject":
		return DecisionRejected, nil
	}
	return "", ErrInvalidDecision
}

package auth

import (
	"github.com/google/uuid"

	"cadastro/internal/errors"
)

// Ownership checks are plain predicates composed in front of the mutating
// handlers, not middleware. They take the already-verified caller identity
// and the resolved resource owner as inputs.

// CheckSelfOwnership allows the call only when the caller is the target user.
func CheckSelfOwnership(callerID, targetUserID uuid.UUID) error {
	if callerID != targetUserID {
		return errors.ErrNotOwner
	}
	return nil
}

// CheckAddressOwnership allows the call only when the caller owns the address.
func CheckAddressOwnership(callerID, ownerID uuid.UUID) error {
	if callerID != ownerID {
		return errors.ErrNotOwner
	}
	return nil
}

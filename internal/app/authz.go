package app

import "stayhub/internal/domain"

// Capability checks shared by the mutating operations. Keeping the policy in
// one place so it can be tested in isolation instead of re-deriving it
// inline per handler.

func ownsBooking(userID string, b domain.Booking) bool {
	return userID != "" && b.CustomerID == userID
}

func ownsProperty(userID string, p domain.Property) bool {
	return userID != "" && p.OwnerID == userID
}

func canEditReview(p domain.Principal, r domain.Review) bool {
	return p.UserID != "" && r.CustomerID == p.UserID
}

func canDeleteReview(p domain.Principal, r domain.Review) bool {
	return canEditReview(p, r) || p.Role == domain.RoleAdmin
}

package models

import (
	"time"
)

// ModerationBucket is the derived status filter used by the admin listing.
// It is never stored; it is computed from the three moderation flags.
type ModerationBucket string

const (
	BucketAll      ModerationBucket = "all"
	BucketPending  ModerationBucket = "pending"  // has_requested_mod
	BucketApproved ModerationBucket = "approved" // is_mod
	BucketBanned   ModerationBucket = "banned"   // is_banned
)

// ValidBucket reports whether s names a known listing bucket.
func ValidBucket(s string) bool {
	switch ModerationBucket(s) {
	case BucketAll, BucketPending, BucketApproved, BucketBanned:
		return true
	}
	return false
}

type Student struct {
	ID           string
	Name         string
	Email        string
	University   string // registration number or free-form identifier
	ProfilePhoto string // opaque reference, storage is out of scope
	RollNumber   string
	Session      string
	Bio          string

	// Moderation flags. Banned and moderator status are independent axes:
	// a banned student may still carry IsMod=true in storage, but consumers
	// must treat a banned account as having no effective privileges.
	IsBanned         bool
	IsMod            bool
	HasRequestedMod  bool
	MotivationForMod string

	CreatedAt time.Time
	UpdatedAt time.Time
}

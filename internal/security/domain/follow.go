package domain

import "time"

type FollowRequestStatus string

const (
	FollowRequestPending  FollowRequestStatus = "pending"
	FollowRequestApproved FollowRequestStatus = "approved"
	FollowRequestRejected FollowRequestStatus = "rejected"
)

// FollowRequest is the approval artifact created when someone tries to
// follow a private account. Resolution removes the record; approval also
// creates the follow edge.
type FollowRequest struct {
	ID          string
	RequesterID string
	TargetID    string
	Status      FollowRequestStatus
	CreatedAt   time.Time
}

// FollowType tells the caller whether a follow attempt completed instantly
// or is waiting on the target's approval.
type FollowType string

const (
	FollowDirect    FollowType = "direct_follow"
	FollowRequested FollowType = "follow_request"
)

type FollowRequestAction string

const (
	FollowActionApprove FollowRequestAction = "approve"
	FollowActionReject  FollowRequestAction = "reject"
)

func (a FollowRequestAction) Valid() bool {
	return a == FollowActionApprove || a == FollowActionReject
}

// FollowRequestEntry is one row of a target's request inbox, joined with the
// requester's display data.
type FollowRequestEntry struct {
	RequestID   string
	RequesterID string
	Username    string
	DisplayName string
	AvatarURL   string
	Status      FollowRequestStatus
	RequestedAt time.Time
}

type FollowRequestPage struct {
	Items    []FollowRequestEntry
	Total    int
	Page     int
	PageSize int
}

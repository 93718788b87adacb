package services

import (
	"errors"
	"fmt"
)

// Role is the capability a user holds in the approval workflow.
type Role string

const (
	RoleEstimator Role = "estimator"
	RoleAdmin     Role = "admin"
)

// Actor identifies who is performing a workflow operation. Handlers build
// it from the session and pass it explicitly so every permission check
// stays pure and testable.
type Actor struct {
	ID   string
	Role Role
}

// SheetStatus is the lifecycle state of a cost sheet.
type SheetStatus string

const (
	SheetDraft     SheetStatus = "draft"
	SheetSubmitted SheetStatus = "submitted"
	SheetApproved  SheetStatus = "approved"
	SheetRejected  SheetStatus = "rejected"
)

// ApprovalStatus is the per-item approval state. The admin_a/admin_b
// states exist in stored data from the two-stage era; new transitions only
// produce pending, approved_both and rejected.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalAdminA   ApprovalStatus = "approved_admin_a"
	ApprovalAdminB   ApprovalStatus = "approved_admin_b"
	ApprovalBoth     ApprovalStatus = "approved_both"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ParseSheetStatus validates a stored status string against the closed enum.
func ParseSheetStatus(s string) (SheetStatus, error) {
	switch SheetStatus(s) {
	case SheetDraft, SheetSubmitted, SheetApproved, SheetRejected:
		return SheetStatus(s), nil
	}
	return "", fmt.Errorf("unknown sheet status %q", s)
}

// ParseApprovalStatus validates a stored approval status string.
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	switch ApprovalStatus(s) {
	case ApprovalPending, ApprovalAdminA, ApprovalAdminB, ApprovalBoth, ApprovalRejected:
		return ApprovalStatus(s), nil
	}
	return "", fmt.Errorf("unknown approval status %q", s)
}

var (
	ErrNotEstimator      = errors.New("only estimators can author cost sheets")
	ErrNotAdmin          = errors.New("only admins can approve or reject items")
	ErrSheetNotEditable  = errors.New("cost sheet is not editable in its current status")
	ErrSheetNotDraft     = errors.New("cost sheet has already been submitted")
	ErrSheetNotSubmitted = errors.New("cost sheet is not submitted for approval")
	ErrItemNotPending    = errors.New("item is not pending approval")
	ErrItemApproved      = errors.New("item is fully approved and locked")
	ErrNoItems           = errors.New("cost sheet has no items")
)

// sheetEditable reports whether items may be authored against the sheet.
// Rejected sheets stay editable so the estimator can rework and resubmit.
func sheetEditable(status SheetStatus) bool {
	return status == SheetDraft || status == SheetRejected
}

// CheckCreateItem guards adding a new line item to a sheet.
func CheckCreateItem(actor Actor, sheet SheetStatus) error {
	if actor.Role != RoleEstimator {
		return ErrNotEstimator
	}
	if !sheetEditable(sheet) {
		return ErrSheetNotEditable
	}
	return nil
}

// CheckEditItem guards mutating an existing item's estimator fields.
// A rejected item remains editable even after the sheet was submitted,
// while a fully approved item is locked permanently.
func CheckEditItem(actor Actor, sheet SheetStatus, item ApprovalStatus) error {
	if actor.Role != RoleEstimator {
		return ErrNotEstimator
	}
	if item == ApprovalBoth {
		return ErrItemApproved
	}
	if !sheetEditable(sheet) && item != ApprovalRejected {
		return ErrSheetNotEditable
	}
	return nil
}

// CheckDeleteItem guards removing an item. Admins may delete
// unconditionally; estimators only while the item is still theirs to edit.
func CheckDeleteItem(actor Actor, sheet SheetStatus, item ApprovalStatus) error {
	if actor.Role == RoleAdmin {
		return nil
	}
	return CheckEditItem(actor, sheet, item)
}

// CheckSubmitSheet guards submitting a sheet for approval. Submitting an
// empty sheet is rejected and the sheet status must not change.
func CheckSubmitSheet(actor Actor, sheet SheetStatus, itemCount int) error {
	if actor.Role != RoleEstimator {
		return ErrNotEstimator
	}
	if sheet != SheetDraft {
		return ErrSheetNotDraft
	}
	if itemCount == 0 {
		return ErrNoItems
	}
	return nil
}

// CheckApproveItem guards approving a single item.
func CheckApproveItem(actor Actor, sheet SheetStatus, item ApprovalStatus) error {
	if actor.Role != RoleAdmin {
		return ErrNotAdmin
	}
	if sheet != SheetSubmitted {
		return ErrSheetNotSubmitted
	}
	if item != ApprovalPending {
		return ErrItemNotPending
	}
	return nil
}

// CheckRejectItem guards rejecting a single item. The guard is identical
// to approval: both act on pending items of a submitted sheet.
func CheckRejectItem(actor Actor, sheet SheetStatus, item ApprovalStatus) error {
	return CheckApproveItem(actor, sheet, item)
}

// ApproveTarget is the status an approved item transitions to. Approval is
// single-stage: one admin action takes a pending item straight to
// approved_both.
func ApproveTarget() ApprovalStatus {
	return ApprovalBoth
}

// NextItemNumber assigns the 1-based sequence number for a new item given
// the count of items already on the sheet.
func NextItemNumber(existingCount int) int {
	return existingCount + 1
}

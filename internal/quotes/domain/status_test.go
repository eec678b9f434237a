package domain

import (
	"testing"

	"solarxp_backend/platform/apperr"
)

func TestItemStatusNeverRegresses(t *testing.T) {
	if StatusApproved.CanAdvanceTo(StatusPending) {
		t.Fatal("Approved must not regress to Pending")
	}
	if StatusOrdered.CanAdvanceTo(StatusApproved) {
		t.Fatal("Ordered must not regress to Approved")
	}
	if StatusOrdered.CanAdvanceTo(StatusPending) {
		t.Fatal("Ordered must not regress to Pending")
	}
}

func TestItemStatusAdvancesForward(t *testing.T) {
	if !StatusPending.CanAdvanceTo(StatusApproved) {
		t.Fatal("Pending should advance to Approved")
	}
	if !StatusApproved.CanAdvanceTo(StatusOrdered) {
		t.Fatal("Approved should advance to Ordered")
	}
	if !StatusApproved.CanAdvanceTo(StatusApproved) {
		t.Fatal("re-approval should be a legal no-op")
	}
}

func TestParseItemStatusRejectsUnknownValue(t *testing.T) {
	if _, err := ParseItemStatus("Shipped"); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for unknown status, got %v", err)
	}
	if _, err := ParseItemStatus("pending"); err == nil {
		t.Fatal("status values are case sensitive")
	}
}

func TestCheckOrderableGuards(t *testing.T) {
	if err := CheckOrderable(false, StatusPending); !apperr.Is(err, apperr.KindPrecondition) {
		t.Fatalf("expected precondition error for unapproved item, got %v", err)
	}
	if err := CheckOrderable(true, StatusOrdered); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for already ordered item, got %v", err)
	}
	if err := CheckOrderable(true, StatusApproved); err != nil {
		t.Fatalf("expected approved item to be orderable, got %v", err)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	if !OrderPlaced.CanTransitionTo(OrderProcessing) {
		t.Fatal("Placed should move to Processing")
	}
	if !OrderPlaced.CanTransitionTo(OrderShipped) {
		t.Fatal("skipping ahead in fulfilment is allowed")
	}
	if OrderShipped.CanTransitionTo(OrderProcessing) {
		t.Fatal("fulfilment must not move backwards")
	}
	if !OrderShipped.CanTransitionTo(OrderCancelled) {
		t.Fatal("cancellation is allowed before delivery")
	}
	if OrderDelivered.CanTransitionTo(OrderCancelled) {
		t.Fatal("delivered orders cannot be cancelled")
	}
	if OrderCancelled.CanTransitionTo(OrderProcessing) {
		t.Fatal("cancelled is terminal")
	}
}

package enums

import "testing"

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Artisan ")
	if err != nil || role != RoleArtisan {
		t.Fatalf("expected artisan, got %q err=%v", role, err)
	}
	if _, err := ParseRole("admin"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestOrderDecisionStatus(t *testing.T) {
	cases := map[OrderDecision]OrderStatus{
		OrderDecisionComplete: OrderStatusCompleted,
		OrderDecisionReject:   OrderStatusRejected,
	}
	for decision, want := range cases {
		got, err := decision.Status()
		if err != nil || got != want {
			t.Fatalf("decision %q: expected %q got %q err=%v", decision, want, got, err)
		}
	}
	if _, err := OrderDecision("maybe").Status(); err == nil {
		t.Fatal("expected error for unknown decision")
	}
}

func TestParseOrderStatus(t *testing.T) {
	if s, err := ParseOrderStatus("P"); err != nil || s != OrderStatusPending {
		t.Fatalf("expected pending, got %q err=%v", s, err)
	}
	if _, err := ParseOrderStatus("X"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if OrderStatusRejected.Label() != "Rechazado" {
		t.Fatalf("unexpected label %q", OrderStatusRejected.Label())
	}
}

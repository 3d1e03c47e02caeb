package status

import (
	"errors"
	"testing"
)

func TestDefaultRegistryLookup(t *testing.T) {
	r := NewDefaultRegistry()

	for _, s := range r.All() {
		got, err := r.Get(s.Slug)
		if err != nil {
			t.Fatalf("Get(%q) returned error: %v", s.Slug, err)
		}
		if got.Slug != s.Slug {
			t.Fatalf("Get(%q).Slug = %q", s.Slug, got.Slug)
		}
	}
}

func TestRegistryUnknownSlug(t *testing.T) {
	r := NewDefaultRegistry()

	_, err := r.Get("definitely-not-registered")
	if err == nil {
		t.Fatalf("expected error for unregistered slug")
	}
	var unknown *UnknownStatusError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownStatusError, got %T", err)
	}
	if unknown.Slug != "definitely-not-registered" {
		t.Fatalf("unexpected slug in error: %q", unknown.Slug)
	}
}

func TestRegistryRejectsDuplicateSlug(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Status{Slug: "paid"}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := r.Register(&Status{Slug: "Paid"}); err == nil {
		t.Fatalf("expected duplicate slug registration to fail")
	}
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	r := NewDefaultRegistry()
	s, err := r.Get(" Action-Required ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Slug != ActionRequired {
		t.Fatalf("expected %q, got %q", ActionRequired, s.Slug)
	}
}

func TestStatusFlags(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		slug          string
		countsAsSale  bool
		reducesStock  bool
		hasAttendees  bool
		incomplete    bool
		completedMail bool
	}{
		{slug: Created, countsAsSale: false, reducesStock: false, hasAttendees: false, incomplete: true},
		{slug: Pending, countsAsSale: true, reducesStock: true, hasAttendees: true, incomplete: true},
		{slug: ActionRequired, countsAsSale: true, reducesStock: true, hasAttendees: true, incomplete: true},
		{slug: Completed, countsAsSale: true, reducesStock: true, hasAttendees: true, incomplete: false, completedMail: true},
		{slug: Refunded, countsAsSale: false, reducesStock: false, hasAttendees: false, incomplete: false},
	}

	for _, tt := range tests {
		s, err := r.Get(tt.slug)
		if err != nil {
			t.Fatalf("Get(%q): %v", tt.slug, err)
		}
		if got := s.CountsAsSale(); got != tt.countsAsSale {
			t.Fatalf("%s.CountsAsSale() = %v, want %v", tt.slug, got, tt.countsAsSale)
		}
		if got := s.ReducesStock(); got != tt.reducesStock {
			t.Fatalf("%s.ReducesStock() = %v, want %v", tt.slug, got, tt.reducesStock)
		}
		if got := s.GeneratesAttendees(); got != tt.hasAttendees {
			t.Fatalf("%s.GeneratesAttendees() = %v, want %v", tt.slug, got, tt.hasAttendees)
		}
		if got := s.IsIncomplete(); got != tt.incomplete {
			t.Fatalf("%s.IsIncomplete() = %v, want %v", tt.slug, got, tt.incomplete)
		}
		if got := s.Has(FlagSendEmailCompletedOrder); got != tt.completedMail {
			t.Fatalf("%s send_email_completed_order = %v, want %v", tt.slug, got, tt.completedMail)
		}
	}
}

func TestFlagSetIntersects(t *testing.T) {
	set := NewFlagSet(FlagStockReduced, FlagCountSales)
	if set.Intersects(FlagSendEmailCompletedOrder) {
		t.Fatalf("expected no intersection with unrelated flag")
	}
	if !set.Intersects(FlagSendEmailCompletedOrder, FlagCountSales) {
		t.Fatalf("expected intersection via count_sales")
	}
}

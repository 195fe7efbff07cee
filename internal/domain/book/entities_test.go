package book

import "testing"

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		available, total int
		want             Status
	}{
		{1, 1, StatusAvailable},
		{0, 1, StatusLoaned},
		{2, 5, StatusAvailable},
		{0, 0, StatusAvailable},
	}
	for _, c := range cases {
		if got := DeriveStatus(c.available, c.total); got != c.want {
			t.Fatalf("DeriveStatus(%d,%d) = %s, want %s", c.available, c.total, got, c.want)
		}
	}
}

func TestCheckOutCheckIn_RoundTrip(t *testing.T) {
	b := &Book{TotalCopies: 1, AvailableCopies: 1, Status: StatusAvailable}

	if !b.CheckOut() {
		t.Fatal("CheckOut on a free copy failed")
	}
	if b.AvailableCopies != 0 || b.Status != StatusLoaned {
		t.Fatalf("after checkout: %+v", b)
	}
	if b.CheckOut() {
		t.Fatal("CheckOut succeeded with no copies left")
	}

	b.CheckIn()
	if b.AvailableCopies != 1 || b.Status != StatusAvailable {
		t.Fatalf("after checkin: %+v", b)
	}
	// capped at total
	b.CheckIn()
	if b.AvailableCopies != 1 {
		t.Fatalf("CheckIn exceeded total: %d", b.AvailableCopies)
	}
}

func TestForcedStatusWins(t *testing.T) {
	b := &Book{TotalCopies: 2, AvailableCopies: 1, Status: StatusMaintenance}

	if b.Lendable() {
		t.Fatal("book in maintenance must not be lendable")
	}
	if b.CheckOut() {
		t.Fatal("CheckOut must refuse a book in maintenance")
	}
	b.CheckIn()
	if b.Status != StatusMaintenance || b.AvailableCopies != 2 {
		t.Fatalf("CheckIn overwrote forced status: %+v", b)
	}

	b.Status = StatusLost
	b.Refresh()
	if b.Status != StatusLost {
		t.Fatalf("Refresh overwrote lost: %s", b.Status)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusAvailable, StatusLoaned, StatusMaintenance, StatusLost} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if Status("burned").Valid() {
		t.Fatal("unknown status accepted")
	}
}

package isbn

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"978-0-306-40615-7": "9780306406157",
		"0 8044 2957 x":     "080442957X",
		"":                  "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range []string{
		"978-0-306-40615-7",
		"9780306406157",
		"0-306-40615-2",
		"080442957X",
		"0-8044-2957-x",
		"979-10-90636-07-1",
	} {
		if !Valid(s) {
			t.Fatalf("Valid(%q) = false, want true", s)
		}
	}
	for _, s := range []string{
		"",
		"12345",
		"978-0-306-40615-8", // bad checksum
		"0-306-40615-3",     // bad checksum
		"X804429570",        // X only allowed last
		"1234567890123",     // wrong prefix
		"97803064061ab",
	} {
		if Valid(s) {
			t.Fatalf("Valid(%q) = true, want false", s)
		}
	}
}

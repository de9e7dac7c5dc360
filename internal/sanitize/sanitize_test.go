package sanitize

import "testing"

func TestCleanStripsAngleBracketsAndControls(t *testing.T) {
	got := Clean("  Jane <script>alert(1)</script>\x00Doe  ", 100)
	want := "Jane scriptalert(1)/scriptDoe"
	if got != want {
		t.Errorf("Clean: got %q, want %q", got, want)
	}
}

func TestCleanClampsLength(t *testing.T) {
	got := Clean("abcdefghij", 4)
	if got != "abcd" {
		t.Errorf("expected 'abcd', got %q", got)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{"  hello <b>world</b> ", "plain", "", "a\tb\nc", "0712 345-678"}
	for _, in := range inputs {
		once := Clean(in, 50)
		twice := Clean(once, 50)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestValidPhone(t *testing.T) {
	valid := []string{"0712345678", "+254712345678", "0712 345 678", "0712-345-678", "1234567"}
	for _, p := range valid {
		if !ValidPhone(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	invalid := []string{"", "123456", "12345678901234567", "07a2345678", "+(254)712345678", "712345678x"}
	for _, p := range invalid {
		if ValidPhone(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestValidEmail(t *testing.T) {
	if !ValidEmail("jane.doe+tag@example.co.ke") {
		t.Error("expected valid email to pass")
	}
	for _, e := range []string{"", "jane", "jane@", "jane@example", "@example.com", "jane doe@example.com"} {
		if ValidEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestMoney(t *testing.T) {
	if got := Money(-50); got != 0 {
		t.Errorf("negative amount: got %v, want 0", got)
	}
	if got := Money(199.99); got != 199.99 {
		t.Errorf("got %v, want 199.99", got)
	}
}

func TestQuantityClamp(t *testing.T) {
	if got := Quantity(0, 1, 100); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
	if got := Quantity(500, 1, 100); got != 100 {
		t.Errorf("got %d, want 100", got)
	}
	if got := Quantity(7, 1, 100); got != 7 {
		t.Errorf("got %d, want 7", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Ladies Shoes":     "ladies-shoes",
		"  New Arrivals! ": "new-arrivals",
		"A  B":             "a-b",
		"A B":              "a-b", // collision with the above is accepted
		"Été--2024":        "t-2024",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"0712345678":    "712345678",
		"+254712345678": "712345678",
		"254712345678":  "712345678",
		"0712 345-678":  "712345678",
		"712345678":     "712345678",
	}
	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q): got %q, want %q", in, got, want)
		}
	}
}

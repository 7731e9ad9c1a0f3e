package email

import "testing"

func TestGreetingName(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		fallback string
		want     string
	}{
		{"simple local part", "alice@example.com", "al1ce", "Alice"},
		{"dotted local part uses first segment", "john.doe@example.com", "jd", "John"},
		{"plus tag stripped", "sam+rp@example.com", "sam", "Sam"},
		{"numeric local part falls back to username", "12345@example.com", "Roadrunner", "Roadrunner"},
		{"empty email falls back to username", "", "Roadrunner", "Roadrunner"},
		{"nothing usable at all", "", "", "there"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GreetingName(tc.email, tc.fallback); got != tc.want {
				t.Fatalf("GreetingName(%q, %q) = %q, want %q", tc.email, tc.fallback, got, tc.want)
			}
		})
	}
}

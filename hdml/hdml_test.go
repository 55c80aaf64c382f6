package hdml

import "testing"

func TestToMarkdown(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Liberate Malevelon Creek.", "Liberate Malevelon Creek."},
		{"bold", "For <i=3>Super Earth</i>!", "For **Super Earth**!"},
		{"highlight", "Report to <i=1>High Command</i>.", "Report to *High Command*."},
		{"close with suffix", "<i=3>Victory</i=3> achieved", "**Victory** achieved"},
		{"nested closes nearest first", "<i=3>major <i=1>order</i></i>", "**major *order***"},
		{"unknown tags stripped", "status<br>report <unknown>done</unknown>", "statusreport done"},
		{"stray close ignored", "no open</i> here", "no open here"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToMarkdown(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestToMarkdownIdempotentOnPlainInput(t *testing.T) {
	in := "Already converted **bold** and *highlight* text."
	once := ToMarkdown(in)
	if once != in {
		t.Fatalf("plain input changed: %q", once)
	}
	if twice := ToMarkdown(once); twice != once {
		t.Fatalf("not idempotent: %q", twice)
	}
}

func TestToPlaintext(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"For <i=3>Super Earth</i>!", "For Super Earth!"},
		{"no markup at all", "no markup at all"},
		{"<unknown>tags</unknown> vanish", "tags vanish"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ToPlaintext(tc.in); got != tc.want {
			t.Fatalf("ToPlaintext(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

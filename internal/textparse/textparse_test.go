package textparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStripDecoration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Benefits:", want: "Benefits:"},
		{name: "bold", input: "**Benefits:**", want: "Benefits:"},
		{name: "bold before colon", input: "**Benefits**:", want: "Benefits:"},
		{name: "markdown header", input: "## Pain Points", want: "Pain Points"},
		{name: "header and bold", input: "### **Features:**", want: "Features:"},
		{name: "html", input: "<strong>Objections:</strong>", want: "Objections:"},
		{name: "blockquote", input: "> Benefits:", want: "Benefits:"},
		{name: "italic", input: "*Benefits:*", want: "Benefits:"},
		{name: "bullet untouched", input: "- Saves time", want: "- Saves time"},
		{name: "hash in text", input: "#1 seller", want: "#1 seller"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripDecoration(tt.input); got != tt.want {
				t.Errorf("StripDecoration(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNumbered(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"1. Price Sensitivity", "Price Sensitivity", true},
		{"**2. Convenience**", "Convenience", true},
		{"### 3. Trust", "Trust", true},
		{"  10.   Spaced out", "Spaced out", true},
		{"1.", "", true},
		{"1.5x faster than before", "", false},
		{"- 1. bullet first", "", false},
		{"Price", "", false},
	}

	for _, tt := range tests {
		got, ok := Numbered(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Numbered(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBullet(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"- Saves time", "Saves time", true},
		{"-Tastes great", "Tastes great", true},
		{"• Energy", "Energy", true},
		{"•Energy", "Energy", true},
		{"* Compact", "Compact", true},
		{"  -  indented", "indented", true},
		{"**bold line**", "", false},
		{"*italic*", "", false},
		{"---", "", false},
		{"-- aside", "", false},
		{"-", "", false},
		{"•  ", "", false},
		{"plain", "", false},
	}

	for _, tt := range tests {
		got, ok := Bullet(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Bullet(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSplitSections_Basic(t *testing.T) {
	text := "Benefits:\n- Saves time\n- Tastes great\nPain Points:\n- Too expensive\n"

	got := SplitSections(text, []string{"Benefits", "Pain Points", "Features"})

	want := map[string]string{
		"Benefits":    "- Saves time\n- Tastes great",
		"Pain Points": "- Too expensive",
		"Features":    "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitSections mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitSections_CaseAndWhitespace(t *testing.T) {
	text := "PAIN   POINTS:\n- Bloating\nbenefits:\n- Energy"

	got := SplitSections(text, []string{"Benefits", "Pain Points"})

	if got["Pain Points"] != "- Bloating" {
		t.Errorf("expected pain points section, got %q", got["Pain Points"])
	}
	if got["Benefits"] != "- Energy" {
		t.Errorf("expected benefits section, got %q", got["Benefits"])
	}
}

func TestSplitSections_Decorated(t *testing.T) {
	text := "## **Benefits:**\n- Saves time\n**Pain Points**\n- Too expensive\n### Features\n- Compact"

	got := SplitSections(text, []string{"Benefits", "Pain Points", "Features"})

	want := map[string]string{
		"Benefits":    "- Saves time",
		"Pain Points": "- Too expensive",
		"Features":    "- Compact",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitSections mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitSections_UnknownHeadingDropsContent(t *testing.T) {
	text := "Intro commentary from the model.\nBenefits:\n- Saves time\n## Summary\n- Not a benefit\nPain Points:\n- Too expensive\n\nClosing thoughts:\nThat covers it."

	got := SplitSections(text, []string{"Benefits", "Pain Points"})

	if got["Benefits"] != "- Saves time" {
		t.Errorf("expected unknown heading to end benefits, got %q", got["Benefits"])
	}
	if got["Pain Points"] != "- Too expensive" {
		t.Errorf("expected pain points, got %q", got["Pain Points"])
	}
}

func TestSplitSections_LeadInLinesStayInSection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "label before evidence",
			text: "Benefits:\n- Saves time\nSupporting quote:\n\"This saved me an hour\"\n- Tastes great\nPain Points:\n- Too expensive",
			want: "- Saves time\nSupporting quote:\n\"This saved me an hour\"\n- Tastes great",
		},
		{
			name: "bold lead-in",
			text: "Benefits:\n**Top three**\n- A\n- B",
			want: "**Top three**\n- A\n- B",
		},
		{
			name: "label with no bullets ends section",
			text: "Benefits:\n- A\nNotes:\nnothing else\n\n- B",
			want: "- A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSections(tt.text, []string{"Benefits", "Pain Points"})
			if got["Benefits"] != tt.want {
				t.Errorf("Benefits = %q, want %q", got["Benefits"], tt.want)
			}
		})
	}
}

func TestExtractItems_AfterLeadIn(t *testing.T) {
	section := SplitSections("Benefits:\n- Saves time\nSupporting quote:\n\"This saved me an hour\"\n- Tastes great", []string{"Benefits"})["Benefits"]

	got := ExtractItems(section)

	want := []Item{
		{Text: "Saves time", Evidence: []string{`"This saved me an hour"`}},
		{Text: "Tastes great", Evidence: []string{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractItems mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitSections_InlineHeadingText(t *testing.T) {
	got := SplitSections("Benefits: - Saves time\n- Tastes great", []string{"Benefits"})

	if got["Benefits"] != "- Saves time\n- Tastes great" {
		t.Errorf("expected inline text to open the section, got %q", got["Benefits"])
	}
}

func TestSplitSections_RepeatedHeadingAppends(t *testing.T) {
	got := SplitSections("Benefits:\n- A\nPain Points:\n- B\nBenefits:\n- C", []string{"Benefits", "Pain Points"})

	if got["Benefits"] != "- A\n- C" {
		t.Errorf("expected repeated heading to append, got %q", got["Benefits"])
	}
}

func TestSplitSections_LongestKeywordFirst(t *testing.T) {
	text := "## Pain Points\n- Too expensive\n## Pain\n- Sore back"

	got := SplitSections(text, []string{"Pain", "Pain Points"})

	if got["Pain Points"] != "- Too expensive" {
		t.Errorf("expected Pain Points section, got %q", got["Pain Points"])
	}
	if got["Pain"] != "- Sore back" {
		t.Errorf("expected Pain section, got %q", got["Pain"])
	}
}

func TestSplitSections_Empty(t *testing.T) {
	got := SplitSections("", []string{"Benefits"})
	if v, ok := got["Benefits"]; !ok || v != "" {
		t.Errorf("expected empty Benefits entry, got %q (present=%v)", v, ok)
	}
}

func TestHasAnySection(t *testing.T) {
	if !HasAnySection("intro\n**Features:**\n- x", []string{"Features"}) {
		t.Error("expected Features heading to be found")
	}
	if HasAnySection("- just\n- bullets", []string{"Features"}) {
		t.Error("expected no heading in plain list")
	}
}

func TestExtractItems_EvidenceAttachment(t *testing.T) {
	text := "- Saves time\n\"This saved me an hour a day\"\n> “Worth every penny”\n- Tastes great"

	got := ExtractItems(text)

	want := []Item{
		{Text: "Saves time", Evidence: []string{`"This saved me an hour a day"`, "“Worth every penny”"}},
		{Text: "Tastes great", Evidence: []string{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractItems mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractItems_IgnoresProseAndLeadingQuotes(t *testing.T) {
	text := "\"orphan quote\"\nSome prose.\n• Bullet one\nexplanatory prose\n* Bullet two\n**bold not a bullet**"

	got := ExtractItems(text)

	want := []Item{
		{Text: "Bullet one", Evidence: []string{}},
		{Text: "Bullet two", Evidence: []string{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractItems mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractItems_MarkerWithoutSpace(t *testing.T) {
	got := ExtractItems("•Saves time\n\"Love it\"\n-Tastes great\n---")

	want := []Item{
		{Text: "Saves time", Evidence: []string{`"Love it"`}},
		{Text: "Tastes great", Evidence: []string{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractItems mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractItems_Empty(t *testing.T) {
	for _, input := range []string{"", "   \n\t\n"} {
		got := ExtractItems(input)
		if got == nil || len(got) != 0 {
			t.Errorf("ExtractItems(%q) = %#v, want empty non-nil slice", input, got)
		}
	}
}

func TestExtractField(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		label  string
		want   string
		wantOK bool
	}{
		{name: "comma terminated", text: "Age: 34-45, Gender: Female", label: "Age", want: "34-45", wantOK: true},
		{name: "second field", text: "Age: 34-45, Gender: Female", label: "Gender", want: "Female", wantOK: true},
		{name: "case insensitive", text: "LOCATION: Austin, TX", label: "location", want: "Austin", wantOK: true},
		{name: "semicolon", text: "Income: high; Education: MBA", label: "Income", want: "high", wantOK: true},
		{name: "thousands separator", text: "Income: $50,000-$75,000\n", label: "Income", want: "$50,000-$75,000", wantOK: true},
		{name: "bold label", text: "**Age:** 29", label: "Age", want: "29", wantOK: true},
		{name: "no colon", text: "Age 34 and up", label: "Age", want: "34 and up", wantOK: true},
		{name: "does not match inside word", text: "Average: 12", label: "Age", want: "", wantOK: false},
		{name: "does not match plural", text: "Ages: 20-30", label: "Age", want: "", wantOK: false},
		{name: "colon preferred", text: "Target age group below\nAge: 40", label: "Age", want: "40", wantOK: true},
		{name: "multi word label", text: "Awareness  Level: Problem Aware", label: "Awareness Level", want: "Problem Aware", wantOK: true},
		{name: "empty value", text: "Age:\nGender: Male", label: "Age", want: "", wantOK: false},
		{name: "absent", text: "Gender: Male", label: "Age", want: "", wantOK: false},
		{name: "empty text", text: "", label: "Age", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractField(tt.text, tt.label)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ExtractField(%q, %q) = (%q, %v), want (%q, %v)", tt.text, tt.label, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractFieldOr(t *testing.T) {
	if got := ExtractFieldOr("nothing here", "Age", "n/a"); got != "n/a" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestTrimQuotes(t *testing.T) {
	if got := TrimQuotes(`  "I never have time"  `); got != "I never have time" {
		t.Errorf("TrimQuotes = %q", got)
	}
	if got := TrimQuotes("“Too pricey”"); got != "Too pricey" {
		t.Errorf("TrimQuotes = %q", got)
	}
}

package portal

import "testing"

func TestIsValidCaseNumber(t *testing.T) {
	tests := []struct {
		caseNumber string
		valid      bool
	}{
		{"25-CV-0880", true},
		{"99-FAM-12345", true},
		{"01-JV-123", true},
		{"25-C-0880", false},
		{"2025-CV-0880", false},
		{"25-CV-08", false},
		{"25-cv-0880", false},
		{"", false},
		{"25-CV-0880 ", false},
	}

	for _, test := range tests {
		if got := IsValidCaseNumber(test.caseNumber); got != test.valid {
			t.Errorf("IsValidCaseNumber(%q) = %v, want %v", test.caseNumber, got, test.valid)
		}
	}
}

func TestResolveDocumentURL(t *testing.T) {
	got, err := ResolveDocumentURL(BaseURL, "ViewDocumentFragment.aspx?DocumentFragmentID=1001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://publicaccess.galvestoncountytx.gov/PublicAccess/ViewDocumentFragment.aspx?DocumentFragmentID=1001"
	if got != want {
		t.Errorf("ResolveDocumentURL = %q, want %q", got, want)
	}

	// Absolute links pass through untouched.
	abs := "https://elsewhere.example/doc.pdf"
	got, err = ResolveDocumentURL(BaseURL, abs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != abs {
		t.Errorf("ResolveDocumentURL = %q, want %q", got, abs)
	}
}

package errors

import "testing"

func TestErrorMessage(t *testing.T) {
	err := Newf(ErrorTypeTransport, "fetch failed after %d attempts", 3)
	want := "transport error: fetch failed after 3 attempts"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	staged := NewStage(ErrorTypeNavigationTimeout, 4, "result link never appeared")
	want = "navigation_timeout error at stage 4: result link never appeared"
	if staged.Error() != want {
		t.Errorf("Error() = %q, want %q", staged.Error(), want)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		retryable bool
	}{
		{ErrorTypeTransport, true},
		{ErrorTypeNavigationTimeout, true},
		{ErrorTypeUnknown, true},
		{ErrorTypeSecured, false},
		{ErrorTypeParsing, false},
		{ErrorTypePlaceholderWrite, false},
		{ErrorTypeUnexpectedContent, false},
	}

	for _, test := range tests {
		if got := IsRetryable(test.errorType); got != test.retryable {
			t.Errorf("IsRetryable(%s) = %v, want %v", test.errorType, got, test.retryable)
		}
	}
}

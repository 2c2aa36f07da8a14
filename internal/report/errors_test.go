package report

import "testing"

func TestNewFormatsMessageAndSpan(t *testing.T) {
	err := New(TagKindMismatch, PointSpan(2, 5), "%s is an array, not a scalar", "a")

	if err.Tag != TagKindMismatch {
		t.Fatalf("expected tag %s, got %s", TagKindMismatch, err.Tag)
	}
	if err.Message != "a is an array, not a scalar" {
		t.Fatalf("unexpected message: %s", err.Message)
	}
	if err.Span.StartLine != 2 || err.Span.StartCol != 5 {
		t.Fatalf("unexpected span: %+v", err.Span)
	}
}

func TestPointSpanCoversOneColumn(t *testing.T) {
	sp := PointSpan(3, 4)
	if sp.StartLine != sp.EndLine || sp.StartCol != 4 || sp.EndCol != 5 {
		t.Fatalf("unexpected point span: %+v", sp)
	}
}

func TestCompileErrorSatisfiesErrorInterface(t *testing.T) {
	var err error = New(TagInternalError, Span{}, "boom")
	if err.Error() == "" {
		t.Fatal("expected a non-empty error string")
	}
}

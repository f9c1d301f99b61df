package diag

import (
	"strings"
	"testing"
)

func TestHasErrors(t *testing.T) {
	if HasErrors(nil) {
		t.Error("empty slice should have no errors")
	}

	warnOnly := []Diagnostic{{Severity: SeverityWarning}}
	if HasErrors(warnOnly) {
		t.Error("warnings alone are not errors")
	}

	mixed := []Diagnostic{{Severity: SeverityWarning}, {Severity: SeverityError}}
	if !HasErrors(mixed) {
		t.Error("error severity missed")
	}
}

func TestSpanString(t *testing.T) {
	tests := []struct {
		span Span
		want string
	}{
		{Span{Filename: "main.ts", Line: 3, Column: 7}, "main.ts:3:7"},
		{Span{Line: 3, Column: 7}, "3:7"},
	}

	for _, tt := range tests {
		if got := tt.span.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatter_Format(t *testing.T) {
	src := `const x: any = 5;`

	d := Diagnostic{
		Stage:    StageParser,
		Severity: SeverityError,
		Code:     CodeAnyTypeRejected,
		Message:  "'any' is not a recognized type annotation",
		Span:     Span{Filename: "main.ts", Line: 1, Column: 10, Start: 9, End: 12},
	}

	var sb strings.Builder
	f := NewFormatter(&sb, src)
	f.Format(d)

	out := sb.String()

	wantLines := []string{
		"error[ANY_TYPE_REJECTED]: 'any' is not a recognized type annotation",
		"  --> main.ts:1:10",
		" 1 | const x: any = 5;",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Three carets under "any", starting at column 10.
	if !strings.Contains(out, "         ^^^") {
		t.Errorf("caret underline misplaced:\n%s", out)
	}
}

func TestFormatter_NoSpan(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityError,
		Message:  "something went wrong",
	}

	var sb strings.Builder
	f := NewFormatter(&sb, "")
	f.Format(d)

	if got := sb.String(); got != "error: something went wrong\n" {
		t.Errorf("output = %q", got)
	}
}

func TestFormatter_HelpAndNotes(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityError,
		Code:     CodeTypeMismatch,
		Message:  "cannot unify Number with String",
	}
	d = d.WithNote("left operand is Number").WithHelp("convert one operand")

	var sb strings.Builder
	f := NewFormatter(&sb, "")
	f.Format(d)

	out := sb.String()
	if !strings.Contains(out, "= note: left operand is Number") {
		t.Errorf("note missing:\n%s", out)
	}
	if !strings.Contains(out, "help: convert one operand") {
		t.Errorf("help missing:\n%s", out)
	}
}

package diag

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{
		Info:    "info",
		Warning: "warning",
		Error:   "error",
	}
	for severity, want := range cases {
		if got := severity.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", severity, got, want)
		}
	}
}

func TestDiagnosticError(t *testing.T) {
	d := Errorf(CodeComponentConflict, []string{"service:database:postgresql", "service:database:mysql"},
		"components cannot be used together")

	msg := d.Error()
	if !strings.Contains(msg, "error") || !strings.Contains(msg, CodeComponentConflict) {
		t.Errorf("unexpected error string %q", msg)
	}
	if !strings.Contains(msg, "service:database:mysql") {
		t.Errorf("expected keys in error string, got %q", msg)
	}
}

func TestDiagnosticJSON(t *testing.T) {
	d := Warningf(CodeMissingComponent, []string{"service:email:resend"}, "skipped")
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"severity":"warning"`) {
		t.Errorf("expected severity marshaled as string, got %s", data)
	}
}

func TestHasErrorsAndWarnings(t *testing.T) {
	diags := []Diagnostic{
		Infof(CodeProducerFailure, nil, "note"),
		Warningf(CodeMissingComponent, nil, "skipped"),
	}
	if HasErrors(diags) {
		t.Error("no error diagnostics present")
	}
	if !HasWarnings(diags) {
		t.Error("warning diagnostic present")
	}

	diags = append(diags, Errorf(CodeCircularDependency, nil, "cycle"))
	if !HasErrors(diags) {
		t.Error("error diagnostic present")
	}
}

func TestFilterByCode(t *testing.T) {
	diags := []Diagnostic{
		Errorf(CodeMissingComponent, nil, "a"),
		Errorf(CodeComponentConflict, nil, "b"),
		Warningf(CodeMissingComponent, nil, "c"),
	}
	got := Filter(diags, CodeMissingComponent)
	if len(got) != 2 {
		t.Errorf("expected 2 diagnostics, got %d", len(got))
	}
}

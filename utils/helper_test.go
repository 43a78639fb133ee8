package utils

import (
	"strings"
	"testing"
)

func TestExecTemplate(t *testing.T) {
	sqlT := `SELECT * FROM tills WHERE company_id = @companyId
{{- if .subsidiaryId }} AND subsidiary_id = @subsidiaryId {{- end }}
{{- if .status }} AND status = @status {{- end }}`

	sql, err := ExecTemplate(sqlT, map[string]interface{}{
		"subsidiaryId": 3,
		"status":       "",
	})
	if err != nil {
		t.Fatalf("ExecTemplate: %v", err)
	}
	if !strings.Contains(sql, "AND subsidiary_id = @subsidiaryId") {
		t.Fatalf("expected subsidiary condition in sql, got %q", sql)
	}
	if strings.Contains(sql, "AND status") {
		t.Fatalf("expected status condition omitted, got %q", sql)
	}
}

func TestExecTemplate_ParseError(t *testing.T) {
	if _, err := ExecTemplate("{{ if }}", nil); err == nil {
		t.Fatal("expected parse error for malformed template")
	}
}

func TestDereferencePtr(t *testing.T) {
	v := 42
	if got := DereferencePtr(&v); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := DereferencePtr[int](nil); got != 0 {
		t.Fatalf("expected zero value, got %d", got)
	}
	if got := DereferencePtr(nil, 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}
}

func TestNilIfEmpty(t *testing.T) {
	if got := NilIfEmpty(""); got != nil {
		t.Fatalf("expected nil for empty string, got %v", got)
	}
	if got := NilIfEmpty("x"); got == nil || *got != "x" {
		t.Fatalf("expected pointer to x, got %v", got)
	}
	if got := NilIfEmpty(0); got != nil {
		t.Fatalf("expected nil for zero int, got %v", got)
	}
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("  12.50 ")
	if err != nil {
		t.Fatalf("ParseDecimal: %v", err)
	}
	if d.String() != "12.5" {
		t.Fatalf("expected 12.5, got %s", d)
	}

	if _, err := ParseDecimal(""); err == nil {
		t.Fatal("expected error for empty string")
	}
	if _, err := ParseDecimal("abc"); err == nil {
		t.Fatal("expected error for non-numeric string")
	}
}

func TestUppercaseLowercaseFirst(t *testing.T) {
	if got := UppercaseFirst("openTill"); got != "OpenTill" {
		t.Fatalf("expected OpenTill, got %s", got)
	}
	if got := LowercaseFirst("OpenTill"); got != "openTill" {
		t.Fatalf("expected openTill, got %s", got)
	}
	if got := LowercaseFirst(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

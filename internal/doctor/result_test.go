package doctor

import (
	"encoding/json"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(-1), "unknown"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "credentials", Status: SeverityWarning})
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["status"] != "warning" {
		t.Errorf("status = %v, want \"warning\"", raw["status"])
	}

	var back CheckResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Status != SeverityWarning {
		t.Errorf("decoded status = %v, want warning", back.Status)
	}

	var s Severity
	if err := s.UnmarshalText([]byte("fatal")); err == nil {
		t.Error("UnmarshalText(\"fatal\") = nil, want error")
	}
}

func TestReport_Worst(t *testing.T) {
	tests := []struct {
		name    string
		results []*CheckResult
		want    Severity
	}{
		{"empty", nil, SeverityPass},
		{"info only", []*CheckResult{{Status: SeverityPass}, {Status: SeverityInfo}}, SeverityInfo},
		{"error wins", []*CheckResult{{Status: SeverityError}, {Status: SeverityWarning}}, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Report{Results: tt.results}
			if got := r.Worst(); got != tt.want {
				t.Errorf("Worst() = %v, want %v", got, tt.want)
			}
		})
	}
}

package models

import (
	"encoding/json"
	"testing"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  ID
	}{
		{name: "nil", input: nil, want: ""},
		{name: "int", input: 1, want: "1"},
		{name: "int64", input: int64(42), want: "42"},
		{name: "uint", input: uint(7), want: "7"},
		{name: "float64 from json", input: float64(3), want: "3"},
		{name: "numeric string", input: "1", want: "1"},
		{name: "padded string", input: " 1 ", want: "1"},
		{name: "opaque token", input: "c1e9", want: "c1e9"},
		{name: "token that is not a number", input: " 1e9x ", want: "1e9x"},
		{name: "json number", input: json.Number("15"), want: "15"},
		{name: "id", input: ID(" s1"), want: "s1"},
		{name: "nil string pointer", input: (*string)(nil), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeID(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeID(%#v) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeID(got); again != got {
				t.Errorf("NormalizeID is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeID_Equality(t *testing.T) {
	a, b, c := NormalizeID(1), NormalizeID("1"), NormalizeID(" 1 ")
	if a != b || b != c {
		t.Fatalf("expected equal ids, got %q %q %q", a, b, c)
	}
	if !ID(" 1").Equal("1") {
		t.Error("Equal should compare normalized forms")
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	var e Enrollment
	payload := `{"id":"e1","studentId":1,"courseId":" c1e9 ","grade":null}`
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if e.StudentID != "1" {
		t.Errorf("numeric studentId should decode to \"1\", got %q", e.StudentID)
	}
	if e.CourseID != "c1e9" {
		t.Errorf("courseId should be trimmed, got %q", e.CourseID)
	}
	if e.Grade != GradeNotSet {
		t.Errorf("null grade should be empty, got %q", e.Grade)
	}

	var id ID
	if err := json.Unmarshal([]byte(`{"bad":true}`), &id); err == nil {
		t.Error("expected error for object id")
	}
}

func TestID_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewEnrollmentInput(7, " c1 ", GradeNotSet))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"studentId":"7","courseId":"c1","grade":""}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestNewID(t *testing.T) {
	seen := NewIDSet()
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != 8 {
			t.Fatalf("unexpected id length: %q", id)
		}
		if seen.Has(id) {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen.Add(id)
	}
}

package models

import (
	"fmt"
	"strings"
)

type Grade string

const (
	GradeNotSet     Grade = ""
	GradeA          Grade = "A"
	GradeB          Grade = "B"
	GradeC          Grade = "C"
	GradeD          Grade = "D"
	GradeE          Grade = "E"
	GradeF          Grade = "F"
	GradeIncomplete Grade = "I"
)

// Grades lists the grade domain in display order.
var Grades = []Grade{GradeNotSet, GradeA, GradeB, GradeC, GradeD, GradeE, GradeF, GradeIncomplete}

func (g Grade) IsValid() bool {
	for _, known := range Grades {
		if g == known {
			return true
		}
	}
	return false
}

// Label is the display text of a grade.
func (g Grade) Label() string {
	if g == GradeNotSet {
		return "Not set"
	}
	return string(g)
}

// ParseGrade accepts a grade letter in any case. "", "-" and "none" clear the grade.
func ParseGrade(s string) (Grade, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "", "-", "NONE", "NOT SET":
		return GradeNotSet, nil
	}

	g := Grade(s)
	if !g.IsValid() {
		return GradeNotSet, fmt.Errorf("invalid grade %q: must be one of A, B, C, D, E, F, I or empty", s)
	}
	return g, nil
}

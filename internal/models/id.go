package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ID is the canonical form of every identifier in the system: a trimmed string.
// Identifiers are opaque, so they are never converted to numbers.
type ID string

// NormalizeID converts any identifier representation into an ID.
// nil maps to the empty ID.
func NormalizeID(value interface{}) ID {
	switch v := value.(type) {
	case nil:
		return ""
	case ID:
		return ID(strings.TrimSpace(string(v)))
	case *ID:
		if v == nil {
			return ""
		}
		return NormalizeID(*v)
	case string:
		return ID(strings.TrimSpace(v))
	case *string:
		if v == nil {
			return ""
		}
		return ID(strings.TrimSpace(*v))
	case json.Number:
		return ID(strings.TrimSpace(v.String()))
	case int:
		return ID(strconv.Itoa(v))
	case int32:
		return ID(strconv.FormatInt(int64(v), 10))
	case int64:
		return ID(strconv.FormatInt(v, 10))
	case uint:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return ID(strconv.FormatUint(v, 10))
	case float32:
		return ID(strconv.FormatFloat(float64(v), 'f', -1, 32))
	case float64:
		return ID(strconv.FormatFloat(v, 'f', -1, 64))
	case fmt.Stringer:
		return ID(strings.TrimSpace(v.String()))
	default:
		return ID(strings.TrimSpace(fmt.Sprint(v)))
	}
}

// NewID returns a short opaque identifier in the style json-server generates.
func NewID() ID {
	return ID(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return NormalizeID(id) == ""
}

// Equal compares two identifiers in normalized form.
func (id ID) Equal(other ID) bool {
	return NormalizeID(id) == NormalizeID(other)
}

// UnmarshalJSON accepts a string, a number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		*id = NormalizeID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: must be a string or a number", data)
	}
	*id = NormalizeID(n)
	return nil
}

// MarshalJSON always emits the normalized string form.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(NormalizeID(id)))
}

// Value stores the normalized form in SQL backends.
func (id ID) Value() (driver.Value, error) {
	return string(NormalizeID(id)), nil
}

// IDSet is a lookup set of normalized identifiers.
type IDSet map[ID]struct{}

func NewIDSet(ids ...ID) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

func (s IDSet) Add(id ID) {
	s[NormalizeID(id)] = struct{}{}
}

func (s IDSet) Has(id ID) bool {
	_, ok := s[NormalizeID(id)]
	return ok
}

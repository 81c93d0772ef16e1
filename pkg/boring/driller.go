package boring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Driller identifies the drilling contractor. It decodes from either a bare
// JSON string (taken as the name) or an object.
type Driller struct {
	Company string `json:"company,omitempty"`
	Name    string `json:"name,omitempty"`
	License string `json:"license,omitempty"`
}

// IsZero reports whether no driller field is set.
func (d Driller) IsZero() bool { return d.Company == "" && d.Name == "" && d.License == "" }

// String joins the populated parts for display.
func (d Driller) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{d.Company, d.Name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	s := strings.Join(parts, " / ")
	if d.License != "" {
		s += " (Lic. " + d.License + ")"
	}
	return strings.TrimSpace(s)
}

// UnmarshalJSON accepts "name" or {"company":..,"name":..,"license":..}.
func (d *Driller) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = Driller{}
		return nil
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("driller: %w", err)
		}
		*d = Driller{Name: name}
		return nil
	}
	type plain Driller
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("driller: %w", err)
	}
	*d = Driller(p)
	return nil
}

// MarshalJSON writes a name-only driller as a bare string so older readers
// keep working.
func (d Driller) MarshalJSON() ([]byte, error) {
	if d.Company == "" && d.License == "" {
		return json.Marshal(d.Name)
	}
	type plain Driller
	return json.Marshal(plain(d))
}

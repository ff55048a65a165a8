// Package profile holds the subject profile record store. The linkage engine
// consumes profiles read-only; only the derived suspicion fields are written
// back by a committed scan.
package profile

import (
	"encoding/json"
	"strings"
	"time"
)

// StringList tolerates the loose field shapes upstream feeds produce: a JSON
// array of strings, a single string, or a comma separated string all decode to
// the same list. It always marshals back as an array.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if strings.Contains(one, ",") {
		parts := strings.Split(one, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		*l = out
		return nil
	}
	if one == "" {
		*l = nil
		return nil
	}
	*l = []string{one}
	return nil
}

// NamedValue tolerates a bare string or a {"name": "..."} object for fields
// some feeds nest (organization, advocate).
type NamedValue string

func (v *NamedValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = NamedValue(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*v = NamedValue(obj.Name)
	return nil
}

func (v NamedValue) String() string { return string(v) }

// Associate is a referenced contact of a subject. The name may not resolve to
// a known profile; resolution happens during detection by normalized name.
type Associate struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Profile is one subject record. Identity fields are owned by the CRUD layer;
// the Suspicion* aggregates are owned exclusively by the linkage engine and
// replaced wholesale on every committed scan.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	IMEIs      StringList  `json:"imei,omitempty"`
	Phones     StringList  `json:"phone,omitempty"`
	Hideouts   StringList  `json:"hideouts,omitempty"`
	Addresses  StringList  `json:"addresses,omitempty"`
	GPS        string      `json:"gps,omitempty"`
	Org        NamedValue  `json:"organization,omitempty"`
	Cases      StringList  `json:"cases,omitempty"`
	Advocate   NamedValue  `json:"advocate,omitempty"`
	Associates []Associate `json:"associates,omitempty"`

	RadicalizationLevel string `json:"radicalization_level,omitempty"`
	Monitored           bool   `json:"monitored,omitempty"`

	SuspicionScore   int      `json:"suspicion_score"`
	LinkageCount     int      `json:"linkage_count"`
	SuspicionReasons []string `json:"suspicion_reasons,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Summary is the engine-owned aggregate written back after a scan.
type Summary struct {
	ProfileID        string   `json:"profile_id"`
	SuspicionScore   int      `json:"suspicion_score"`
	LinkageCount     int      `json:"linkage_count"`
	SuspicionReasons []string `json:"suspicion_reasons"`
}

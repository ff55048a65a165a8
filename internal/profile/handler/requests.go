package handler

import (
	"strings"

	"crosslink/internal/profile"
	dErrors "crosslink/pkg/domain-errors"
)

// SaveProfileRequest is the HTTP request body for creating or updating a
// profile. Field shapes are tolerant; see profile.StringList and
// profile.NamedValue.
type SaveProfileRequest struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	IMEIs      profile.StringList  `json:"imei"`
	Phones     profile.StringList  `json:"phone"`
	Hideouts   profile.StringList  `json:"hideouts"`
	Addresses  profile.StringList  `json:"addresses"`
	GPS        string              `json:"gps"`
	Org        profile.NamedValue  `json:"organization"`
	Cases      profile.StringList  `json:"cases"`
	Advocate   profile.NamedValue  `json:"advocate"`
	Associates []profile.Associate `json:"associates"`

	RadicalizationLevel string `json:"radicalization_level"`
	Monitored           bool   `json:"monitored"`
}

// Validate implements the httputil Validatable contract.
func (r *SaveProfileRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if len(r.Name) > 200 {
		return dErrors.New(dErrors.CodeValidation, "name must be at most 200 characters")
	}
	return nil
}

// ToProfile builds the domain record. Derived suspicion fields are never
// accepted from clients; the engine owns them.
func (r *SaveProfileRequest) ToProfile() profile.Profile {
	return profile.Profile{
		ID:                  strings.TrimSpace(r.ID),
		Name:                r.Name,
		IMEIs:               r.IMEIs,
		Phones:              r.Phones,
		Hideouts:            r.Hideouts,
		Addresses:           r.Addresses,
		GPS:                 strings.TrimSpace(r.GPS),
		Org:                 r.Org,
		Cases:               r.Cases,
		Advocate:            r.Advocate,
		Associates:          r.Associates,
		RadicalizationLevel: r.RadicalizationLevel,
		Monitored:           r.Monitored,
	}
}

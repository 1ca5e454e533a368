package models

// Facility is a bookable venue as returned by the facility details endpoint.
type Facility struct {
	ID            int64    `json:"facilityId"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	FacilityType  string   `json:"facilityType"`
	HourlyRate    float64  `json:"hourlyRate"`
	OwnerID       int64    `json:"ownerId,omitempty"`
	AverageRating *float64 `json:"averageRating,omitempty"`
	ReviewCount   int      `json:"reviewCount,omitempty"`
	Features      string   `json:"features,omitempty"`
	Rules         string   `json:"rules,omitempty"`
	Availability  string   `json:"availability,omitempty"`
	Agent         *Agent   `json:"agent,omitempty"`
}

// Agent is the facility manager shown next to the facility.
type Agent struct {
	Name  string `json:"name"`
	Bio   string `json:"bio,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// HasRating reports whether the facility has at least one rating.
func (f *Facility) HasRating() bool {
	return f.AverageRating != nil && *f.AverageRating > 0
}

// ShortDescription cuts the description to max runes and appends "..." when cut.
func (f *Facility) ShortDescription(max int) string {
	r := []rune(f.Description)
	if max <= 0 || len(r) <= max {
		return f.Description
	}
	return string(r[:max]) + "..."
}

// FacilityInput is the body of facility create and update calls.
type FacilityInput struct {
	ID           int64   `json:"facilityId,omitempty"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	FacilityType string  `json:"facilityType"`
	HourlyRate   float64 `json:"hourlyRate"`
	OwnerID      int64   `json:"ownerId"`
}

// SearchFilter narrows the facility search. Zero values are omitted.
type SearchFilter struct {
	City         string
	FacilityType string
	MinPrice     float64
	MaxPrice     float64
}

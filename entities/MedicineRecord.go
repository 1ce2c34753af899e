package entities

import "time"

// MedicineRecord is a medicine as shown to the user after a scan.
// Table entries leave ScanID, ScannedAt and ImageURL empty.
type MedicineRecord struct {
	ScanID       string    `json:"scanId,omitempty"`
	Name         string    `json:"name"`
	GenericName  string    `json:"genericName"`
	Strength     string    `json:"strength"`
	Form         string    `json:"form"`
	Manufacturer string    `json:"manufacturer"`
	Description  string    `json:"description"`
	Uses         []string  `json:"uses"`
	SideEffects  []string  `json:"sideEffects"`
	Warnings     []string  `json:"warnings"`
	Interactions []string  `json:"interactions"`
	Dosage       string    `json:"dosage"`
	Confidence   int       `json:"confidence"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	ScannedAt    time.Time `json:"scannedAt,omitzero"`
}

// Clone returns a copy of m that shares no slices with it.
func (m MedicineRecord) Clone() MedicineRecord {
	c := m
	c.Uses = append([]string(nil), m.Uses...)
	c.SideEffects = append([]string(nil), m.SideEffects...)
	c.Warnings = append([]string(nil), m.Warnings...)
	c.Interactions = append([]string(nil), m.Interactions...)
	return c
}

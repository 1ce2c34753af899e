// Package oncologists serves the static oncologist directory.
package oncologists

import (
	"strings"
	"unicode"

	"github.com/giygas/myoncologist-api/entities"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var profiles = []entities.OncologistProfile{
	{
		ID:             "1",
		Name:           "Dr. Sarah Chen",
		Specialty:      "Medical Oncology",
		Rating:         4.9,
		Reviews:        156,
		Distance:       "0.8 miles",
		Address:        "123 Medical Center Dr, Suite 400",
		Phone:          "+1 (555) 123-4567",
		Email:          "dr.chen@medcenter.com",
		Availability:   []string{"Mon 9-5", "Wed 9-5", "Fri 9-5"},
		Experience:     "15+ years",
		Languages:      []string{"English", "Mandarin", "Spanish"},
		Insurance:      []string{"Blue Cross", "Aetna", "United Health", "Medicare"},
		Image:          "/placeholder.svg",
		Certifications: []string{"Board Certified Oncologist", "American Society of Clinical Oncology"},
	},
	{
		ID:             "2",
		Name:           "Dr. Michael Rodriguez",
		Specialty:      "Surgical Oncology",
		Rating:         4.8,
		Reviews:        203,
		Distance:       "1.2 miles",
		Address:        "456 Cancer Treatment Blvd, Floor 3",
		Phone:          "+1 (555) 234-5678",
		Email:          "dr.rodriguez@cancercenter.org",
		Availability:   []string{"Mon 8-6", "Tue 8-6", "Thu 8-6"},
		Experience:     "12+ years",
		Languages:      []string{"English", "Spanish"},
		Insurance:      []string{"Kaiser", "Blue Cross", "Cigna", "Medicare"},
		Image:          "/placeholder.svg",
		Certifications: []string{"Board Certified Surgeon", "Society of Surgical Oncology"},
	},
	{
		ID:             "3",
		Name:           "Dr. Emily Watson",
		Specialty:      "Radiation Oncology",
		Rating:         4.7,
		Reviews:        89,
		Distance:       "2.1 miles",
		Address:        "789 Healing Arts Center, Wing B",
		Phone:          "+1 (555) 345-6789",
		Email:          "dr.watson@healingarts.com",
		Availability:   []string{"Tue 9-5", "Wed 9-5", "Thu 9-5"},
		Experience:     "10+ years",
		Languages:      []string{"English", "French"},
		Insurance:      []string{"Blue Cross", "Aetna", "Humana"},
		Image:          "/placeholder.svg",
		Certifications: []string{"Board Certified Radiation Oncologist", "American Board of Radiology"},
	},
}

// BookingUnavailableMessage is returned for every appointment request.
const BookingUnavailableMessage = "Our appointment booking system is currently under development. We're working hard to bring you this feature soon."

// Directory is a read-only view over the oncologist profiles.
type Directory struct {
	profiles []entities.OncologistProfile
	byID     map[string]int
	index    []string // folded search text, parallel to profiles
}

// NewDirectory builds the directory over the built-in profiles.
func NewDirectory() *Directory {
	return newDirectory(profiles)
}

func newDirectory(src []entities.OncologistProfile) *Directory {
	d := &Directory{
		profiles: src,
		byID:     make(map[string]int, len(src)),
		index:    make([]string, len(src)),
	}
	for i, p := range src {
		d.byID[p.ID] = i
		fields := []string{p.Name, p.Specialty}
		fields = append(fields, p.Languages...)
		fields = append(fields, p.Insurance...)
		d.index[i] = Fold(strings.Join(fields, " "))
	}
	return d
}

// List returns every profile in directory order.
func (d *Directory) List() []entities.OncologistProfile {
	out := make([]entities.OncologistProfile, len(d.profiles))
	for i, p := range d.profiles {
		out[i] = clone(p)
	}
	return out
}

// Get returns the profile with the given id.
func (d *Directory) Get(id string) (entities.OncologistProfile, bool) {
	i, ok := d.byID[id]
	if !ok {
		return entities.OncologistProfile{}, false
	}
	return clone(d.profiles[i]), true
}

// Search matches query against name, specialty, languages and insurance,
// ignoring case and diacritics. An empty query returns the full list.
func (d *Directory) Search(query string) []entities.OncologistProfile {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return d.List()
	}

	results := []entities.OncologistProfile{}
	for i, text := range d.index {
		if strings.Contains(text, q) {
			results = append(results, clone(d.profiles[i]))
		}
	}
	return results
}

// Len returns the number of profiles.
func (d *Directory) Len() int {
	return len(d.profiles)
}

// Fold lowercases s and strips combining marks, so "Émily" matches "emily".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func clone(p entities.OncologistProfile) entities.OncologistProfile {
	p.Availability = append([]string(nil), p.Availability...)
	p.Languages = append([]string(nil), p.Languages...)
	p.Insurance = append([]string(nil), p.Insurance...)
	p.Certifications = append([]string(nil), p.Certifications...)
	return p
}

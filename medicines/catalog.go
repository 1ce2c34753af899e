// Package medicines holds the reference medicine table used by the scanner,
// the mock recognition step that picks from it, and the bounded scan history.
package medicines

import "github.com/giygas/myoncologist-api/entities"

// table is the fixed set of medicines the scanner can "recognize".
// Confidence here is the nominal table value; scans display a separately
// randomized one.
var table = []entities.MedicineRecord{
	{
		Name:         "Ibuprofen",
		GenericName:  "Ibuprofen",
		Strength:     "200mg",
		Form:         "Tablet",
		Manufacturer: "Generic",
		Description:  "Nonsteroidal anti-inflammatory drug (NSAID) used to reduce fever and treat pain or inflammation",
		Uses:         []string{"Pain relief", "Fever reduction", "Inflammation", "Headaches", "Arthritis", "Menstrual cramps"},
		SideEffects:  []string{"Stomach upset", "Heartburn", "Dizziness", "Mild headache", "Ringing in ears"},
		Warnings:     []string{"Take with food or milk", "Do not exceed recommended dosage", "Avoid if allergic to aspirin", "Consult doctor if pregnant"},
		Interactions: []string{"Aspirin", "Blood thinners", "Other NSAIDs", "Alcohol"},
		Dosage:       "200-400mg every 4-6 hours as needed",
		Confidence:   95,
	},
	{
		Name:         "Lisinopril",
		GenericName:  "Lisinopril",
		Strength:     "10mg",
		Form:         "Tablet",
		Manufacturer: "Generic",
		Description:  "ACE inhibitor used to treat high blood pressure and heart failure",
		Uses:         []string{"High blood pressure", "Heart failure", "Heart attack recovery"},
		SideEffects:  []string{"Dizziness", "Dry cough", "Fatigue", "Headache"},
		Warnings:     []string{"Do not take if pregnant", "Avoid potassium supplements", "Monitor kidney function"},
		Interactions: []string{"NSAIDs", "Lithium", "Potassium supplements"},
		Dosage:       "10mg once daily",
		Confidence:   95,
	},
	{
		Name:         "Metformin",
		GenericName:  "Metformin Hydrochloride",
		Strength:     "500mg",
		Form:         "Tablet",
		Manufacturer: "Generic",
		Description:  "Oral diabetes medicine that helps control blood sugar levels",
		Uses:         []string{"Type 2 diabetes", "Polycystic ovary syndrome"},
		SideEffects:  []string{"Nausea", "Diarrhea", "Stomach upset", "Metallic taste"},
		Warnings:     []string{"Take with food", "Avoid alcohol", "Monitor blood sugar"},
		Interactions: []string{"Alcohol", "Contrast dye", "Other diabetes medications"},
		Dosage:       "500mg twice daily with meals",
		Confidence:   92,
	},
	{
		Name:         "Atorvastatin",
		GenericName:  "Atorvastatin Calcium",
		Strength:     "20mg",
		Form:         "Tablet",
		Manufacturer: "Generic",
		Description:  "Statin medication used to lower cholesterol and reduce heart disease risk",
		Uses:         []string{"High cholesterol", "Heart disease prevention", "Stroke prevention"},
		SideEffects:  []string{"Muscle pain", "Headache", "Nausea", "Liver problems"},
		Warnings:     []string{"Avoid grapefruit", "Monitor liver function", "Report muscle pain"},
		Interactions: []string{"Grapefruit juice", "Warfarin", "Birth control pills"},
		Dosage:       "20mg once daily in the evening",
		Confidence:   88,
	},
}

// Catalog returns a copy of the reference table in its fixed order.
func Catalog() []entities.MedicineRecord {
	out := make([]entities.MedicineRecord, len(table))
	for i, m := range table {
		out[i] = m.Clone()
	}
	return out
}

// Names returns the medicine names in table order.
func Names() []string {
	names := make([]string, len(table))
	for i, m := range table {
		names[i] = m.Name
	}
	return names
}

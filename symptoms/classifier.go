// Package symptoms maps free-text symptom descriptions to canned cancer-category
// analyses using fixed keyword sets.
package symptoms

import (
	"strings"

	"github.com/giygas/myoncologist-api/entities"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// rule is a keyword set and the result it produces when any keyword is present.
type rule struct {
	keywords []string
	result   entities.SymptomAnalysisResult
}

// Rules are evaluated in this order and each one matches independently.
var rules = []rule{
	{
		keywords: []string{"mole", "spot", "skin", "dark"},
		result: entities.SymptomAnalysisResult{
			Category:       "Skin Cancer (Melanoma)",
			Confidence:     75,
			Symptoms:       []string{"Unusual moles or spots", "Changes in skin pigmentation"},
			Recommendation: "Schedule a dermatological examination within 1-2 weeks",
			Urgency:        entities.UrgencyMedium,
		},
	},
	{
		keywords: []string{"breast", "lump", "chest"},
		result: entities.SymptomAnalysisResult{
			Category:       "Breast Cancer",
			Confidence:     82,
			Symptoms:       []string{"Breast lumps or masses", "Changes in breast tissue"},
			Recommendation: "Urgent consultation with oncologist or mammogram",
			Urgency:        entities.UrgencyHigh,
		},
	},
	{
		keywords: []string{"cough", "breath", "chest pain"},
		result: entities.SymptomAnalysisResult{
			Category:       "Lung Cancer",
			Confidence:     65,
			Symptoms:       []string{"Persistent cough", "Breathing difficulties", "Chest pain"},
			Recommendation: "Chest X-ray and pulmonary function tests recommended",
			Urgency:        entities.UrgencyMedium,
		},
	},
	{
		keywords: []string{"blood", "stool", "bowel", "abdominal"},
		result: entities.SymptomAnalysisResult{
			Category:       "Colorectal Cancer",
			Confidence:     70,
			Symptoms:       []string{"Blood in stool", "Bowel changes", "Abdominal discomfort"},
			Recommendation: "Colonoscopy screening and gastroenterologist consultation",
			Urgency:        entities.UrgencyMedium,
		},
	},
}

var fallback = entities.SymptomAnalysisResult{
	Category:       "General Health Concern",
	Confidence:     45,
	Symptoms:       []string{"Non-specific symptoms reported"},
	Recommendation: "General health check-up with primary care physician",
	Urgency:        entities.UrgencyLow,
}

// FallbackCategory is the category returned when no keyword set matches.
const FallbackCategory = "General Health Concern"

// Classify returns one result per matched category in rule order, or the
// general fallback when nothing matches. The returned slice and its records
// are freshly allocated on every call.
func Classify(text string) []entities.SymptomAnalysisResult {
	lowered := cases.Lower(language.Und).String(text)

	var results []entities.SymptomAnalysisResult
	for _, r := range rules {
		if containsAny(lowered, r.keywords) {
			results = append(results, clone(r.result))
		}
	}

	if len(results) == 0 {
		results = append(results, clone(fallback))
	}

	return results
}

// Categories returns every category Classify can emit, fallback last.
func Categories() []string {
	names := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		names = append(names, r.result.Category)
	}
	return append(names, FallbackCategory)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func clone(r entities.SymptomAnalysisResult) entities.SymptomAnalysisResult {
	r.Symptoms = append([]string(nil), r.Symptoms...)
	return r
}

package ingestion

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/facultyfinder/core"
)

// bioTerms are research terms picked out of biographies as extra tags.
var bioTerms = []string{
	"machine learning", "deep learning", "data science", "computer vision",
	"natural language processing", "nlp", "artificial intelligence",
	"wireless networks", "cyber security", "iot", "blockchain",
	"robotics", "signal processing", "cloud computing", "ml", "dl", "ai",
}

// mojibake are the runes left behind when UTF-8 punctuation was decoded as cp1252.
const mojibake = "â€™\u201c\u201d"

// minTagLength is the shortest specialization word kept as a tag, exclusive.
const minTagLength = 2

// Transform cleans raw profiles into records with ids 1..n in input order.
func Transform(raws []RawProfile) ([]*core.FacultyRecord, error) {
	records := make([]*core.FacultyRecord, len(raws))
	for i := range raws {
		record, err := CleanProfile(&raws[i], core.ID(i+1))
		if err != nil {
			return nil, err
		}
		records[i] = record
	}
	return records, nil
}

// CleanProfile cleans one profile and assigns it id.
func CleanProfile(raw *RawProfile, id core.ID) (*core.FacultyRecord, error) {
	bio := cleanText(raw.Bio)
	specs := splitSpecializations(raw.Specialization)

	record := &core.FacultyRecord{
		Id:                 id,
		Name:               cleanText(raw.Name),
		FacultyType:        cleanText(raw.FacultyType),
		Education:          cleanText(raw.Education),
		Bio:                bio,
		SpecializationList: specs,
		ResearchTags:       researchTags(specs, bio),
		Email:              cleanEmail(raw.Email),
		Phone:              cleanPhone(raw.Phone),
		Address:            cleanAddress(raw.Address),
	}
	record.Rebuild()

	if err := core.ValidateFacultyRecord(record); err != nil {
		return nil, fmt.Errorf("%w: profile %d: %w", ErrInvalidRecord, id, err)
	}
	return record, nil
}

// value returns the trimmed field, or "" if it is absent or already the sentinel.
func value(field *string) string {
	if field == nil {
		return ""
	}
	v := strings.TrimSpace(*field)
	if v == core.NotAvailable {
		return ""
	}
	return v
}

// collapseSpaces replaces every whitespace run with a single space.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func cleanText(field *string) string {
	return core.OrNotAvailable(collapseSpaces(value(field)))
}

func cleanEmail(field *string) string {
	email := strings.ToLower(value(field))
	email = strings.NewReplacer("[at]", "@", "[dot]", ".").Replace(email)
	email = strings.Join(strings.Fields(email), "")
	return core.OrNotAvailable(email)
}

func cleanPhone(field *string) string {
	phone := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value(field))
	return core.OrNotAvailable(phone)
}

func cleanAddress(field *string) string {
	address := strings.Map(func(r rune) rune {
		if strings.ContainsRune(mojibake, r) {
			return -1
		}
		return r
	}, value(field))
	return core.OrNotAvailable(collapseSpaces(address))
}

// splitSpecializations splits the comma-separated specialization field into
// trimmed lowercase items, dropping empty ones.
func splitSpecializations(field *string) []string {
	var specs []string
	for _, item := range strings.Split(value(field), ",") {
		item = strings.ToLower(collapseSpaces(item))
		if item != "" {
			specs = append(specs, item)
		}
	}
	return specs
}

// researchTags collects specialization words longer than minTagLength runes
// and the bioTerms found in bio, deduplicated and sorted.
func researchTags(specs []string, bio string) []string {
	var tags []string
	for _, spec := range specs {
		for _, word := range strings.Fields(spec) {
			if utf8.RuneCountInString(word) > minTagLength {
				tags = append(tags, word)
			}
		}
	}
	if bio != core.NotAvailable {
		lower := strings.ToLower(bio)
		for _, term := range bioTerms {
			if strings.Contains(lower, term) {
				tags = append(tags, term)
			}
		}
	}
	if len(tags) == 0 {
		return nil
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

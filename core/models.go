package core

import (
	"encoding/binary"
	"slices"

	"github.com/go-crypt/x/blake2b"
)

// NotAvailable is the sentinel stored in text fields whose source value was missing.
// Text fields are never empty once a record has passed the ingestion boundary.
const NotAvailable = "Not Available"

// ID identifies a faculty record. IDs are assigned 1..n at load time.
type ID uint64

// Fingerprint is a content hash of a record's combined text.
// Index and catalog compare fingerprints to prove they describe the same corpus in the same order.
type Fingerprint uint64

// FingerprintText computes the BLAKE2b-64 fingerprint of text.
func FingerprintText(text string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// FacultyRecord is one faculty member's cleaned profile.
// Records are immutable after load; CombinedText is derived by Rebuild.
type FacultyRecord struct {
	Id                 ID       `json:"faculty_id"`
	Name               string   `json:"name"`
	FacultyType        string   `json:"faculty_type"`
	Education          string   `json:"education"`
	Bio                string   `json:"bio"`
	SpecializationList []string `json:"specialization_list"`
	ResearchTags       []string `json:"research_tags"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	Address            string   `json:"address"`
	CombinedText       string   `json:"combined_text"`
}

// Rebuild recomputes CombinedText from the source fields.
func (r *FacultyRecord) Rebuild() {
	r.CombinedText = BuildCombinedText(r)
}

// Fingerprint returns the fingerprint of the record's combined text.
func (r *FacultyRecord) Fingerprint() Fingerprint {
	return FingerprintText(r.CombinedText)
}

// Clone returns a deep copy of the record.
func (r *FacultyRecord) Clone() *FacultyRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.SpecializationList = slices.Clone(r.SpecializationList)
	c.ResearchTags = slices.Clone(r.ResearchTags)
	return &c
}

// IsAvailable reports whether a text field carries a real value.
func IsAvailable(value string) bool {
	return value != "" && value != NotAvailable
}

// OrNotAvailable returns value, or the sentinel when value is blank.
func OrNotAvailable(value string) string {
	if value == "" {
		return NotAvailable
	}
	return value
}

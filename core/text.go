// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "strings"

// Labels used in the combined text.
const (
	LabelName           = "Name"
	LabelRole           = "Role"
	LabelEducation      = "Education"
	LabelBiography      = "Biography"
	LabelResearchAreas  = "Research Areas"
	LabelResearchTerms  = "Research Keywords"
	combinedSeparator   = " | "
	combinedListJoiner  = ", "
	combinedLabelSuffix = ": "
)

// BuildCombinedText concatenates the searchable fields of a record into the
// single text blob used for keyword and semantic matching:
//
//	Name: N | Role: R | Education: E | Biography: B | Research Areas: a, b | Research Keywords: x, y
//
// Parts whose value is missing (the sentinel, or an empty list) are left out,
// except the name, which is always present so the text is never empty.
func BuildCombinedText(r *FacultyRecord) string {
	if r == nil {
		return ""
	}

	var parts []string
	addText := func(label, value string) {
		if IsAvailable(value) {
			parts = append(parts, label+combinedLabelSuffix+value)
		}
	}
	addList := func(label string, values []string) {
		if len(values) > 0 {
			parts = append(parts, label+combinedLabelSuffix+strings.Join(values, combinedListJoiner))
		}
	}

	if r.Name != "" {
		parts = append(parts, LabelName+combinedLabelSuffix+r.Name)
	}
	addText(LabelRole, r.FacultyType)
	addText(LabelEducation, r.Education)
	addText(LabelBiography, r.Bio)
	addList(LabelResearchAreas, r.SpecializationList)
	addList(LabelResearchTerms, r.ResearchTags)

	return strings.Join(parts, combinedSeparator)
}

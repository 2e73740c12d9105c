package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/facultyfinder/core"
	"github.com/poiesic/facultyfinder/search"
)

func writeResolution(w io.Writer, res *search.Resolution) {
	if res.Stage == search.StageNone {
		fmt.Fprintln(w, "Empty query.")
		return
	}
	fmt.Fprintf(w, "%d result(s) from %s stage for %q\n", len(res.Matches), res.Stage, res.Expanded)
	for _, m := range res.Matches {
		if res.Stage.Scored() {
			fmt.Fprintf(w, "  [%.3f] ", m.Score)
		} else {
			fmt.Fprint(w, "  ")
		}
		writeSummary(w, m.Record)
	}
}

func writeSummary(w io.Writer, r *core.FacultyRecord) {
	fmt.Fprintf(w, "%d\t%s\t%s\n", r.Id, r.Name, strings.Join(r.SpecializationList, ", "))
}

func writeRecord(w io.Writer, r *core.FacultyRecord) {
	fmt.Fprintf(w, "ID:              %d\n", r.Id)
	fmt.Fprintf(w, "Name:            %s\n", r.Name)
	fmt.Fprintf(w, "Role:            %s\n", r.FacultyType)
	fmt.Fprintf(w, "Education:       %s\n", r.Education)
	fmt.Fprintf(w, "Specializations: %s\n", joinOrNA(r.SpecializationList))
	fmt.Fprintf(w, "Research tags:   %s\n", joinOrNA(r.ResearchTags))
	fmt.Fprintf(w, "Email:           %s\n", r.Email)
	fmt.Fprintf(w, "Phone:           %s\n", r.Phone)
	fmt.Fprintf(w, "Address:         %s\n", r.Address)
	fmt.Fprintf(w, "Bio:             %s\n", r.Bio)
}

func joinOrNA(values []string) string {
	if len(values) == 0 {
		return core.NotAvailable
	}
	return strings.Join(values, ", ")
}

// explainMonitor prints each cascade decision as it happens.
type explainMonitor struct {
	w io.Writer
}

var _ search.SearchMonitor = (*explainMonitor)(nil)

func newExplainMonitor(w io.Writer) *explainMonitor {
	return &explainMonitor{w: w}
}

// orNoop lets a nil *explainMonitor mean "no monitor".
func (m *explainMonitor) orNoop() search.SearchMonitor {
	if m == nil {
		return nil
	}
	return m
}

func (m *explainMonitor) Start(queryID, query string) {
	fmt.Fprintf(m.w, "query %s: %q\n", queryID, query)
}

func (m *explainMonitor) AfterExpansion(expanded string) {
	fmt.Fprintf(m.w, "  expanded: %q\n", expanded)
}

func (m *explainMonitor) StageEvaluated(stage search.Stage, matches []search.Match, satisfied bool) {
	verdict := "pass"
	if satisfied {
		verdict = "accept"
	}
	fmt.Fprintf(m.w, "  %-8s %d match(es) -> %s\n", stage, len(matches), verdict)
}

func (m *explainMonitor) Finish(res *search.Resolution) {
	fmt.Fprintf(m.w, "  resolved by %s stage\n", res.Stage)
}

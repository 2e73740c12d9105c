// Package ingestion turns scraped faculty profiles into clean FacultyRecords
// and loads them into a repository.
//
// Cleaning happens once, at this boundary. Records that leave this package
// have every text field populated (missing values become core.NotAvailable),
// lowercase specializations and research tags, and a built combined text.
//
// Pipeline cleans profiles concurrently on a worker pool and replaces the
// repository's catalog wholesale; ids are assigned 1..n in input order.
package ingestion

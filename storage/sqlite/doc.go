// Package sqlite implements storage.FacultyRepository on a single SQLite
// file using the pure-Go modernc.org/sqlite driver.
//
// The table layout matches the "faculty" table consumed by existing
// reporting tools: one row per faculty member, with specialization_list and
// research_tags stored as JSON arrays.
package sqlite

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/facultyfinder/core"
	"github.com/poiesic/facultyfinder/search"
)

const rawProfiles = `[
  {"name": "Dr. Ada Kapoor", "faculty_type": "Professor", "specialization": "Machine Learning, Robotics",
   "bio": "Works on deep learning.", "email": "ada[at]example[dot]edu"},
  {"name": "Bina Rao", "faculty_type": "Associate Professor", "specialization": "Cloud Computing"},
  {"name": "Charu Mehta", "specialization": "Cryptography"}
]`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"facultyfinder", "--log-level", "error"}, args...))
	return out.String(), err
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportListShow(t *testing.T) {
	for _, backend := range []string{"badger", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			db := filepath.Join(t.TempDir(), "catalog")
			input := writeInput(t, rawProfiles)

			out, err := run(t, "--db", db, "--backend", backend, "import", input)
			require.NoError(t, err)
			assert.Contains(t, out, "Imported 3 faculty records")

			out, err = run(t, "--db", db, "--backend", backend, "list")
			require.NoError(t, err)
			assert.Equal(t, "1\tDr. Ada Kapoor\tmachine learning, robotics\n"+
				"2\tBina Rao\tcloud computing\n"+
				"3\tCharu Mehta\tcryptography\n", out)

			out, err = run(t, "--db", db, "--backend", backend, "list", "--specialization", "CLOUD")
			require.NoError(t, err)
			assert.Equal(t, "2\tBina Rao\tcloud computing\n", out)

			out, err = run(t, "--db", db, "--backend", backend, "list", "--bio", "Deep Learning")
			require.NoError(t, err)
			assert.Equal(t, "1\tDr. Ada Kapoor\tmachine learning, robotics\n", out)

			out, err = run(t, "--db", db, "--backend", backend, "list", "--specialization", "learning", "--bio", "quantum")
			require.NoError(t, err)
			assert.Empty(t, out)

			out, err = run(t, "--db", db, "--backend", backend, "show", "1")
			require.NoError(t, err)
			assert.Contains(t, out, "Name:            Dr. Ada Kapoor")
			assert.Contains(t, out, "Email:           ada@example.edu")
			assert.Contains(t, out, "Phone:           Not Available")
		})
	}
}

func TestImportClean(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog")
	input := writeInput(t, `[{"faculty_id": 42, "name": "Esha Nair", "faculty_type": "Professor",
		"education": "Not Available", "bio": "Not Available", "specialization_list": ["networks"],
		"email": "Not Available", "phone": "Not Available", "address": "Not Available"}]`)

	out, err := run(t, "--db", db, "import", "--clean", input)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 faculty records")

	out, err = run(t, "--db", db, "show", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Esha Nair")
}

func TestCommandErrors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"import without file", []string{"--db", db, "import"}, "exactly one input file"},
		{"import missing file", []string{"--db", db, "import", "/nonexistent/profiles.json"}, "failed to open input"},
		{"import malformed", []string{"--db", db, "import", writeInput(t, `{"name": 1}`)}, "invalid ingestion input"},
		{"show bad id", []string{"--db", db, "show", "abc"}, "invalid record id"},
		{"show missing", []string{"--db", db, "show", "99"}, "no faculty record with id 99"},
		{"unknown backend", []string{"--db", db, "--backend", "mongo", "list"}, "unknown storage backend"},
		{"bad config file", []string{"--config", "/nonexistent/config.yaml", "list"}, "reading config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSetupLogLevel(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run([]string{"facultyfinder", "--log-level", "loud", "--db", t.TempDir(), "list"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "catalog.sqlite")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level: error\nstorage:\n  backend: sqlite\n  path: "+db+"\n"), 0o644))

	_, err := run(t, "--config", cfgPath, "import", writeInput(t, rawProfiles))
	require.NoError(t, err)

	_, err = os.Stat(db)
	assert.NoError(t, err, "sqlite catalog should be created at the configured path")
}

func TestWriteResolution(t *testing.T) {
	ada := &core.FacultyRecord{Id: 1, Name: "Ada Kapoor", SpecializationList: []string{"robotics"}}

	tests := []struct {
		name string
		res  *search.Resolution
		want string
	}{
		{
			name: "empty",
			res:  &search.Resolution{Stage: search.StageNone},
			want: "Empty query.\n",
		},
		{
			name: "textual stage has no score",
			res: &search.Resolution{Stage: search.StageName, Expanded: "ada",
				Matches: []search.Match{{Record: ada}}},
			want: "1 result(s) from name stage for \"ada\"\n  1\tAda Kapoor\trobotics\n",
		},
		{
			name: "scored stage",
			res: &search.Resolution{Stage: search.StageSemantic, Expanded: "robots",
				Matches: []search.Match{{Record: ada, Score: 0.8}}},
			want: "1 result(s) from semantic stage for \"robots\"\n  [0.800] 1\tAda Kapoor\trobotics\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			writeResolution(&out, tt.res)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestExplainMonitor(t *testing.T) {
	var nilMonitor *explainMonitor
	assert.Nil(t, nilMonitor.orNoop())

	var out bytes.Buffer
	m := newExplainMonitor(&out)
	m.Start("q1", "ML")
	m.AfterExpansion("machine learning")
	m.StageEvaluated(search.StageName, nil, false)
	m.StageEvaluated(search.StageKeyword, []search.Match{{}, {}}, true)
	m.Finish(&search.Resolution{Stage: search.StageKeyword})

	assert.Equal(t, "query q1: \"ML\"\n"+
		"  expanded: \"machine learning\"\n"+
		"  name     0 match(es) -> pass\n"+
		"  keyword  2 match(es) -> accept\n"+
		"  resolved by keyword stage\n", out.String())
}

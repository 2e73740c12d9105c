package badger

// NewMemoryRepository creates an in-memory faculty repository for testing.
// Closing the repository closes its backend.
func NewMemoryRepository() (*FacultyRepository, error) {
	backend, err := OpenBackend("", true, nil)
	if err != nil {
		return nil, err
	}
	repo := NewFacultyRepository(backend)
	repo.ownsBackend = true
	return repo, nil
}

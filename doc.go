// Package facultyfinder answers free-text questions about a faculty catalog.
//
// A Finder loads every FacultyRecord from a repository, embeds each record's
// combined text once at startup, and resolves queries through a four-stage
// cascade: unique name match, keyword containment, semantic similarity above
// a threshold, and a top-N fallback.
//
//	repo, err := badger.NewRepository("faculty.db", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
//	finder, err := facultyfinder.Open(ctx, repo,
//	    facultyfinder.WithAIConfig(ai.NewConfig(ai.WithProvider(ai.ProviderOllama))))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer finder.Close()
//
//	records, err := finder.Resolve(ctx, "NLP")
package facultyfinder

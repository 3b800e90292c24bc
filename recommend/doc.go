// Package recommend finds manga similar to a title query.
//
// Each item is reduced to one document made of its title, description,
// genres and themes. Documents are weighted with TF-IDF over unigrams and
// bigrams, compared by cosine similarity, then boosted by genre and theme
// overlap with the query item:
//
//	score = cosine * (1 + 2*J(genres) + 2*J(themes))
//
// where J is the Jaccard index of the two tag sets.
//
// Engine runs the pipeline over an in-memory corpus. Recommender wraps it
// with request validation, corpus loading, metrics and an optional matrix
// cache.
//
//	rec, err := recommend.NewRecommender(loader, recommend.WithMatrixCache(4))
//	if err != nil {
//	    return err
//	}
//	defer rec.Release()
//	results, err := rec.Recommend(ctx, "one piece", 10)
package recommend

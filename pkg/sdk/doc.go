// Package tfidx embeds the tfidx ranking engine in a Go program.
//
// The client reads a precomputed TF-IDF snapshot from Valkey, Redis or
// PostgreSQL, loads it in the background and ranks free-text queries against
// it by cosine similarity.
//
//	client, err := tfidx.New(ctx, tfidx.WithValkey("localhost:6379", ""))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	if err := client.Load(ctx); err != nil {
//	    return err
//	}
//	hits, err := client.Search(ctx, "sort an array", 5)
//
// Search returns ErrNotReady until the first load succeeds.
package tfidx

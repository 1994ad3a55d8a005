// Package pgstore persists documents in PostgreSQL as JSONB.
//
// Each row keeps the document's serialized mapping in body and its type
// discriminant in doc_type. Reads decode body and rebuild the concrete type
// through document.FromMap.
//
//	pool, _ := pgxpool.New(ctx, os.Getenv("DATABASE_URL"))
//	store := pgstore.New(pool)
//	if err := store.EnsureSchema(ctx); err != nil { ... }
package pgstore

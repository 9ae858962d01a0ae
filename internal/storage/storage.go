// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage implements the Storage façade (component A): the cache
table and the typed DAO over the ten tables in §6 — sources, series,
series_sources, chapters, episodes, streams, chapter_images,
series_prefs, chapter_progress, search_cache.

It follows the teacher's pgx repository idiom: a thin struct wrapping a
*pgxpool.Pool, explicit column lists sourced from the schema package,
fmt.Sprintf to assemble SQL from those columns, and dberr.Wrap at every call site
to translate driver errors into apperr's taxonomy.
*/
package storage

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL-backed implementation of the Storage façade.
//
// It is constructed once in main.go and shared by internal/identity,
// internal/aggregator, and the admin HTTP surface.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a [Store] backed by the given connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

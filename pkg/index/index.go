// Package index maintains the searchable vector index derived from the
// player roster. Vectors live in a SQLite database, one row per player,
// and similarity ranking happens in memory over the collection.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/roster"
)

type Result struct {
	Player   roster.Player
	Document string
	Score    float64
}

type Index struct {
	mu         sync.RWMutex
	db         *sql.DB
	collection string
	embedder   Embedder
}

// New opens (or creates) the index database at path. The caller owns the
// lifecycle via Close.
func New(path, collection string, embedder Embedder) (*Index, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("unable to create index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open index database: %w", err)
	}

	idx := &Index{db: db, collection: collection, embedder: embedder}
	if err := idx.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to initialize index schema: %w", err)
	}

	return idx, nil
}

// NewWithDB wraps an existing database handle; used by tests.
func NewWithDB(db *sql.DB, collection string, embedder Embedder) *Index {
	return &Index{db: db, collection: collection, embedder: embedder}
}

func (x *Index) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		collection TEXT NOT NULL,
		name TEXT NOT NULL,
		document TEXT NOT NULL,
		metadata TEXT NOT NULL,
		embedding TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection);
	`
	_, err := x.db.Exec(schema)

	return err
}

func (x *Index) Close() error {
	return x.db.Close()
}

func (x *Index) Ping(ctx context.Context) error {
	return x.db.PingContext(ctx)
}

// Rebuild replaces the collection with documents derived from the given
// roster snapshot.
func (x *Index) Rebuild(ctx context.Context, players []roster.Player) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("unable to start index transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ?`, x.collection,
	); err != nil {
		return fmt.Errorf("unable to clear index collection: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO documents (id, collection, name, document, metadata, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("unable to prepare index statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, player := range players {
		document := roster.Document(player)

		embedding, err := x.embedder.Embed(ctx, document)
		if err != nil {
			return fmt.Errorf("unable to embed player document: %w", err)
		}
		embeddingJSON, err := json.Marshal(embedding)
		if err != nil {
			return fmt.Errorf("unable to encode embedding: %w", err)
		}
		metadata, err := json.Marshal(player)
		if err != nil {
			return fmt.Errorf("unable to encode player metadata: %w", err)
		}

		id := fmt.Sprintf("player_%d", i)
		if _, err := stmt.ExecContext(ctx,
			id, x.collection, player.Name, document, metadata, embeddingJSON,
		); err != nil {
			return fmt.Errorf("unable to insert player document: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("unable to commit index transaction: %w", err)
	}

	return nil
}

// Search embeds the query and returns the topK most similar documents.
func (x *Index) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	queryEmbedding, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unable to embed query: %w", err)
	}

	rows, err := x.db.QueryContext(ctx,
		`SELECT document, metadata, embedding FROM documents WHERE collection = ?`,
		x.collection,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to query index: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Result
	for rows.Next() {
		var document, metadata, embeddingJSON string
		if err := rows.Scan(&document, &metadata, &embeddingJSON); err != nil {
			return nil, fmt.Errorf("unable to scan index row: %w", err)
		}

		var embedding []float32
		if err := json.Unmarshal([]byte(embeddingJSON), &embedding); err != nil {
			return nil, fmt.Errorf("unable to decode embedding: %w", err)
		}
		var player roster.Player
		if err := json.Unmarshal([]byte(metadata), &player); err != nil {
			return nil, fmt.Errorf("unable to decode player metadata: %w", err)
		}

		results = append(results, Result{
			Player:   player,
			Document: document,
			Score:    CosineSimilarity(queryEmbedding, embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to read index rows: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	return results, nil
}

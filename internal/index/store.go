package index

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Store holds the embedded documents in memory and persists them to a
// sqlite file so the server can restart without re-embedding.
type Store struct {
	mu   sync.RWMutex
	path string
	docs []Document
	vecs [][]float32
}

// NewStore creates a store backed by the sqlite file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Len returns the number of indexed documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Ready reports whether the store holds any documents.
func (s *Store) Ready() bool {
	return s.Len() > 0
}

// Documents returns a copy of the indexed documents.
func (s *Store) Documents() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Metas returns the metadata view used by the debug endpoint.
func (s *Store) Metas() []Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Meta, len(s.docs))
	for i, d := range s.docs {
		out[i] = Meta{Kind: d.Kind, CourseID: d.CourseID, ItemID: d.ItemID}
	}
	return out
}

// Replace swaps the store contents atomically.
func (s *Store) Replace(docs []Document, vecs [][]float32) error {
	if len(docs) != len(vecs) {
		return fmt.Errorf("store replace: %d documents but %d vectors", len(docs), len(vecs))
	}

	s.mu.Lock()
	s.docs = docs
	s.vecs = vecs
	s.mu.Unlock()
	return nil
}

// Search returns the k documents whose embeddings are closest to query by
// cosine similarity, best first.
func (s *Store) Search(query []float32, k int) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, 0, len(s.vecs))
	for i, v := range s.vecs {
		scores = append(scores, scored{idx: i, score: cosine(query, v)})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if k > len(scores) {
		k = len(scores)
	}
	out := make([]Document, 0, k)
	for _, sc := range scores[:k] {
		out = append(out, s.docs[sc.idx])
	}
	return out
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Load reads a previously saved index. It returns false with no error
// when no index file exists yet.
func (s *Store) Load() (bool, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return false, nil
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return false, fmt.Errorf("open index db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, kind, course_id, item_id, content, embedding FROM documents`)
	if err != nil {
		return false, fmt.Errorf("read index db: %w", err)
	}
	defer rows.Close()

	var docs []Document
	var vecs [][]float32
	for rows.Next() {
		var d Document
		var blob []byte
		if err := rows.Scan(&d.ID, &d.Kind, &d.CourseID, &d.ItemID, &d.Content, &blob); err != nil {
			return false, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
		vecs = append(vecs, decodeVector(blob))
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("read index db: %w", err)
	}

	s.mu.Lock()
	s.docs = docs
	s.vecs = vecs
	s.mu.Unlock()
	return len(docs) > 0, nil
}

// Save writes the current index to the sqlite file, replacing any
// previous contents.
func (s *Store) Save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create index dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("open index db: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		course_id INTEGER NOT NULL,
		item_id INTEGER NOT NULL,
		content TEXT NOT NULL,
		embedding BLOB NOT NULL
	)`); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM documents`); err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO documents (id, kind, course_id, item_id, content, embedding) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range s.docs {
		if _, err := stmt.Exec(d.ID, d.Kind, d.CourseID, d.ItemID, d.Content, encodeVector(s.vecs[i])); err != nil {
			return fmt.Errorf("insert document %s: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(buf []byte) []float32 {
	v := make([]float32, len(buf)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return v
}

// Package store implements the JSON-file document store that backs all
// repositories: named collections of schemaless documents in one data file,
// with a single process-wide ID sequence shared by every collection.
//
// Consistency contract: every mutation (Insert/Update/Remove/NextID) applies
// the change in memory, flushes the whole store to disk atomically
// (temp file + rename) and only then returns. If the flush fails the
// in-memory change is rolled back, so memory is never ahead of disk.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"
)

// Collection names present in every data file. The seq collection holds the
// single global_seq counter record; timelogs exists for file compatibility
// with older installs even though nothing writes to it today.
const (
	Users     = "users"
	Clients   = "clients"
	Vehicles  = "vehicles"
	Jobs      = "jobs"
	Notes     = "notes"
	Timelogs  = "timelogs"
	Seq       = "seq"
	Quotes    = "quotes"
	seqKey    = "global_seq"
	idField   = "id"
	filePerms = 0o644
)

var collections = []string{Users, Clients, Vehicles, Jobs, Notes, Timelogs, Seq, Quotes}

func init() {
	// Money fields must persist as JSON numbers, not quoted strings,
	// to keep the data-file format stable.
	decimal.MarshalJSONWithoutQuotes = true
}

// Store is a file-backed document store. Mutations serialize through mu;
// reads take the shared lock and may race with a writer, but documents are
// replaced wholesale (copy-on-write) so a reader never observes a torn doc.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[string][]map[string]any
}

// Open loads the data file at path, creating it (with empty collections and
// the seq counter at 1) when absent. Missing collections in an existing file
// are added; unknown ones are preserved.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: make(map[string][]map[string]any)}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fresh store
	case err != nil:
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	default:
		if err := s.load(raw); err != nil {
			return nil, err
		}
	}

	for _, c := range collections {
		if _, ok := s.data[c]; !ok {
			s.data[c] = []map[string]any{}
		}
	}
	if s.seqDoc() == nil {
		s.data[Seq] = append(s.data[Seq], map[string]any{"key": seqKey, "value": json.Number("1")})
	}

	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var file map[string][]map[string]any
	if err := dec.Decode(&file); err != nil {
		return fmt.Errorf("store: parse %s: %w", s.path, err)
	}
	for name, docs := range file {
		if docs == nil {
			docs = []map[string]any{}
		}
		s.data[name] = docs
	}
	return nil
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// NextID atomically reserves and persists the next value of the global
// sequence. IDs are shared across all collections and never reused.
func (s *Store) NextID() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextIDLocked()
}

func (s *Store) nextIDLocked() (int, error) {
	doc := s.seqDoc()
	cur, err := asInt(doc["value"])
	if err != nil {
		return 0, fmt.Errorf("store: corrupt sequence record: %w", err)
	}

	doc["value"] = json.Number(fmt.Sprint(cur + 1))
	if err := s.persistLocked(); err != nil {
		doc["value"] = json.Number(fmt.Sprint(cur))
		return 0, err
	}
	return cur, nil
}

// Insert assigns the next global ID to doc, appends it to the collection and
// flushes. doc may be any JSON-marshalable value; its "id" field is set by
// the store.
func (s *Store) Insert(collection string, doc any) (int, error) {
	m, err := ToDoc(doc)
	if err != nil {
		return 0, fmt.Errorf("store: insert into %s: %w", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.seqDoc()
	cur, err := asInt(seq["value"])
	if err != nil {
		return 0, fmt.Errorf("store: corrupt sequence record: %w", err)
	}

	m[idField] = json.Number(fmt.Sprint(cur))
	seq["value"] = json.Number(fmt.Sprint(cur + 1))
	prev := s.data[collection]
	s.data[collection] = append(prev, m)

	if err := s.persistLocked(); err != nil {
		s.data[collection] = prev
		seq["value"] = json.Number(fmt.Sprint(cur))
		return 0, err
	}
	return cur, nil
}

// Update merges patch into the document with the given id. Missing documents
// are a silent no-op. The merged document replaces the old one wholesale so
// concurrent readers keep a consistent snapshot.
func (s *Store) Update(collection string, id int, patch map[string]any) error {
	p, err := ToDoc(patch)
	if err != nil {
		return fmt.Errorf("store: update %s/%d: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.data[collection]
	for i, doc := range docs {
		if !idMatches(doc, id) {
			continue
		}
		merged := make(map[string]any, len(doc)+len(p))
		for k, v := range doc {
			merged[k] = v
		}
		for k, v := range p {
			merged[k] = v
		}
		docs[i] = merged
		if err := s.persistLocked(); err != nil {
			docs[i] = doc
			return err
		}
		return nil
	}
	return nil
}

// Remove deletes the document with the given id; missing documents are a
// silent no-op.
func (s *Store) Remove(collection string, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.data[collection]
	for i, doc := range docs {
		if !idMatches(doc, id) {
			continue
		}
		next := make([]map[string]any, 0, len(docs)-1)
		next = append(next, docs[:i]...)
		next = append(next, docs[i+1:]...)
		s.data[collection] = next
		if err := s.persistLocked(); err != nil {
			s.data[collection] = docs
			return err
		}
		return nil
	}
	return nil
}

// Get returns the document with the given id, or ok=false.
func (s *Store) Get(collection string, id int) (map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.data[collection] {
		if idMatches(doc, id) {
			return doc, true
		}
	}
	return nil, false
}

// All returns every document of a collection in insertion order.
func (s *Store) All(collection string) []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]map[string]any, len(s.data[collection]))
	copy(out, s.data[collection])
	return out
}

// Find returns the documents whose fields equal every entry of where
// (AND semantics), in insertion order.
func (s *Store) Find(collection string, where map[string]any) []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []map[string]any
	for _, doc := range s.data[collection] {
		match := true
		for k, v := range where {
			if !valueEq(doc[k], v) {
				match = false
				break
			}
		}
		if match {
			out = append(out, doc)
		}
	}
	return out
}

// persistLocked writes the whole store to a temp file in the same directory
// and renames it over the data file. Callers hold mu.
func (s *Store) persistLocked() error {
	payload, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".taller-*.json")
	if err != nil {
		return fmt.Errorf("store: persist: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("store: persist: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("store: persist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: persist: %w", err)
	}
	if err := os.Chmod(tmp.Name(), filePerms); err != nil {
		return fmt.Errorf("store: persist: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("store: persist: %w", err)
	}
	return nil
}

func (s *Store) seqDoc() map[string]any {
	for _, doc := range s.data[Seq] {
		if k, ok := doc["key"].(string); ok && k == seqKey {
			return doc
		}
	}
	return nil
}

// ── document helpers ─────────────────────────────────────────────────────────

// ToDoc converts any JSON-marshalable value into a schemaless document with
// json.Number for all numeric fields, so numbers round-trip without float
// drift.
func ToDoc(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// Decode unmarshals a schemaless document into a typed struct.
func Decode(doc map[string]any, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// DocID extracts the integer id of a document (0 when absent or malformed).
func DocID(doc map[string]any) int {
	n, err := asInt(doc[idField])
	if err != nil {
		return 0
	}
	return n
}

func idMatches(doc map[string]any, id int) bool {
	return valueEq(doc[idField], id)
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

// valueEq compares a stored field against a query value. Numbers compare
// numerically regardless of representation (json.Number vs Go ints); other
// scalars compare by equality.
func valueEq(stored, want any) bool {
	sf, sok := asFloat(stored)
	wf, wok := asFloat(want)
	if sok && wok {
		return sf == wf
	}
	if sok != wok {
		return false
	}
	return stored == want
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

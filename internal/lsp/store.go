package lsp

import (
	"sync"

	"tlang/internal/frontend"
)

// Document is one open file after analysis. It is never mutated once
// stored, so readers can keep using it after the store moves on.
type Document struct {
	URI     string
	Version int32
	Text    string
	Unit    *frontend.Unit
	Err     error
	Index   *DocIndex
}

type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document // uri -> latest analysis
	opt  frontend.Options
}

func NewStore(opt frontend.Options) *Store {
	return &Store{docs: map[string]*Document{}, opt: opt}
}

// SetOptions changes the front-end options used by later calls to Set.
// Documents already stored keep their analysis.
func (s *Store) SetOptions(opt frontend.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opt = opt
}

func (s *Store) Options() frontend.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opt
}

// Set analyzes text and replaces the stored document for uri.
func (s *Store) Set(uri string, version int32, text string) *Document {
	doc := Analyze(uri, text, s.Options())
	doc.Version = version
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = doc
	return doc
}

func (s *Store) Get(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[uri]
	return d, ok
}

func (s *Store) Delete(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Analyze runs the front end over text. The index is empty unless the
// document parsed.
func Analyze(uri, text string, opt frontend.Options) *Document {
	path := UriToPath(uri)
	if path == "" {
		path = uri
	}
	unit, err := frontend.Run(path, text, opt)
	doc := &Document{URI: uri, Text: text, Unit: unit, Err: err}
	doc.Index = BuildIndex(uri, text, unit.Program)
	return doc
}

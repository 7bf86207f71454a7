// Copyright 2026 Seeds DAO Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package blob

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
)

var ErrDocumentNotFound = errors.New("document not found")

var docKeyPrefix = []byte("doc/")

// ProposalDocument holds the display metadata of a proposal. Documents are
// content-addressed: the row in the metadata store carries only the hash.
type ProposalDocument struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
}

// DocStore is a badger-backed content-addressed store for proposal display
// documents.
type DocStore struct {
	logger *slog.Logger
	db     *badger.DB
}

// New creates a document store under the given data directory. An empty data
// directory uses badger's in-memory mode, useful for testing.
func New(logger *slog.Logger, dataDir string) (*DocStore, error) {
	var opts badger.Options
	if dataDir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(filepath.Join(dataDir, "blob"))
	}
	// We have our own logger
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &DocStore{
		logger: logger,
		db:     db,
	}, nil
}

// Put stores a document and returns its content hash
func (s *DocStore) Put(doc *ProposalDocument) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	hash := sha256.Sum256(data)
	key := append(append([]byte{}, docKeyPrefix...), hash[:]...)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, err
	}
	return hash[:], nil
}

// Get retrieves a document by its content hash
func (s *DocStore) Get(hash []byte) (*ProposalDocument, error) {
	key := append(append([]byte{}, docKeyPrefix...), hash...)
	var doc ProposalDocument
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrDocumentNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Close closes the underlying badger database
func (s *DocStore) Close() error {
	return s.db.Close()
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDocStore(t *testing.T) *DocStore {
	t.Helper()
	store, err := New(nil, "")
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close() //nolint:errcheck
	})
	return store
}

func TestDocStoreRoundTrip(t *testing.T) {
	store := setupTestDocStore(t)

	doc := &ProposalDocument{
		Title:       "Reforest the watershed",
		Summary:     "Plant native species along the river",
		Description: "Longer form rationale",
		URL:         "https://example.com/watershed",
	}
	hash, err := store.Put(doc)
	require.NoError(t, err)
	require.Len(t, hash, 32)

	fetched, err := store.Get(hash)
	require.NoError(t, err)
	assert.Equal(t, doc.Title, fetched.Title)
	assert.Equal(t, doc.URL, fetched.URL)
}

func TestDocStoreContentAddressed(t *testing.T) {
	store := setupTestDocStore(t)

	doc := &ProposalDocument{Title: "same"}
	hash1, err := store.Put(doc)
	require.NoError(t, err)
	hash2, err := store.Put(&ProposalDocument{Title: "same"})
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2)

	hash3, err := store.Put(&ProposalDocument{Title: "different"})
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash3)
}

func TestDocStoreMissing(t *testing.T) {
	store := setupTestDocStore(t)

	_, err := store.Get(make([]byte, 32))
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

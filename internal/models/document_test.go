package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_ContentEquals(t *testing.T) {
	tests := []struct {
		name  string
		doc   *Document
		other *Document
		want  bool
	}{
		{
			name:  "identical content",
			doc:   &Document{ID: "doc-1", Content: []byte(`{"sections":["a"]}`), Revision: 1},
			other: &Document{ID: "doc-1", Content: []byte(`{"sections":["a"]}`), Revision: 7},
			want:  true,
		},
		{
			name:  "different content",
			doc:   &Document{ID: "doc-1", Content: []byte(`{"sections":["a"]}`)},
			other: &Document{ID: "doc-1", Content: []byte(`{"sections":["b"]}`)},
			want:  false,
		},
		{
			name:  "both empty",
			doc:   &Document{ID: "doc-1"},
			other: &Document{ID: "doc-1"},
			want:  true,
		},
		{
			name: "nil other",
			doc:  &Document{ID: "doc-1", Content: []byte("x")},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.ContentEquals(tt.other))
		})
	}
}

func TestDocument_ContentEquals_IgnoresRevision(t *testing.T) {
	// Одинаковое содержимое при разных ревизиях — это no-op merge, не конфликт
	local := &Document{ID: "doc-1", Content: []byte("same"), Revision: 3}
	server := &Document{ID: "doc-1", Content: []byte("same"), Revision: 9}

	assert.True(t, local.ContentEquals(server))
}

func TestDocument_Clone(t *testing.T) {
	original := &Document{
		ID:        "doc-1",
		OwnerID:   "user-1",
		Content:   []byte("original content"),
		Revision:  5,
		UpdatedAt: time.Now(),
	}

	clone := original.Clone()

	require.NotSame(t, original, clone)
	assert.Equal(t, original, clone)

	// Мутация копии не должна затрагивать оригинал
	clone.Content[0] = 'X'
	assert.Equal(t, byte('o'), original.Content[0])
}

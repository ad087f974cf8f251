package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "notes.db"), opts...)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.InsertNote(ctx, "first")
	require.NoError(t, err)

	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.EnsureSchema(ctx))

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "first", notes[0].Content)
}

func TestEnsureSchemaMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	s := New(filepath.Join(dir, "notes.db"))
	defer s.Close()

	err := s.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Equal(t, StorageUnavailable, KindOf(err))

	// The failed open is not remembered.
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, s.EnsureSchema(context.Background()))
}

func TestInsertNote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.InsertNote(ctx, "Buy milk")
	require.NoError(t, err)
	second, err := s.InsertNote(ctx, "<script>alert(1)</script>")
	require.NoError(t, err)

	assert.Greater(t, second, first)

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	contents := []string{notes[0].Content, notes[1].Content}
	assert.ElementsMatch(t, []string{"Buy milk", "<script>alert(1)</script>"}, contents)
	for _, n := range notes {
		assert.False(t, n.CreatedAt.IsZero())
	}
}

func TestListNotesEmpty(t *testing.T) {
	s := newTestStore(t)

	notes, err := s.ListNotes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestListNotesOrder(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		offsets []time.Duration
		want    []string
	}{
		{
			name:    "increasing timestamps",
			offsets: []time.Duration{0, time.Second, 2 * time.Second},
			want:    []string{"note 2", "note 1", "note 0"},
		},
		{
			name:    "timestamps out of insertion order",
			offsets: []time.Duration{2 * time.Second, 0, time.Second},
			want:    []string{"note 0", "note 2", "note 1"},
		},
		{
			name:    "identical timestamps fall back to id",
			offsets: []time.Duration{0, 0, time.Second},
			want:    []string{"note 2", "note 1", "note 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{}
			s := newTestStore(t, WithClock(clock.now))
			ctx := context.Background()

			for i, offset := range tt.offsets {
				clock.current = base.Add(offset)
				_, err := s.InsertNote(ctx, fmt.Sprintf("note %d", i))
				require.NoError(t, err)
			}

			notes, err := s.ListNotes(ctx)
			require.NoError(t, err)

			got := make([]string, 0, len(notes))
			for _, n := range notes {
				got = append(got, n.Content)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreatedAtUsesStoreClock(t *testing.T) {
	stamp := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	s := newTestStore(t, WithClock(func() time.Time { return stamp }))
	ctx := context.Background()

	id, err := s.InsertNote(ctx, "dated")
	require.NoError(t, err)

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, id, notes[0].ID)
	assert.True(t, stamp.Equal(notes[0].CreatedAt), "got %s", notes[0].CreatedAt)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, WriteFailed, KindOf(&Error{Kind: WriteFailed, Err: os.ErrPermission}))
	assert.Equal(t, Unknown, KindOf(os.ErrPermission))
	assert.ErrorIs(t, &Error{Kind: ReadFailed, Err: os.ErrClosed}, os.ErrClosed)
	assert.Equal(t, "read failed: file already closed", (&Error{Kind: ReadFailed, Err: os.ErrClosed}).Error())
}

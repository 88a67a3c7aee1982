package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojun-dev/danwatch/internal/ledger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testEntry(id string) ledger.Entry {
	return ledger.Entry{
		ID:         id,
		Keyword:    "자전거",
		Title:      "로드 자전거",
		Price:      150000,
		Location:   "서울특별시",
		URL:        "https://www.daangn.com/kr/buy-sell/" + id,
		RecordedAt: time.Now(),
	}
}

func TestExistsEmpty(t *testing.T) {
	store := openTestStore(t)

	ok, err := store.Exists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInsertThenExists(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testEntry("A")))

	ok, err := store.Exists(ctx, "A")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInsertIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := testEntry("A")
	require.NoError(t, store.Insert(ctx, first))

	// Same ID with different fields: must be a no-op, not an error,
	// and must not overwrite the original row.
	second := testEntry("A")
	second.Title = "다른 제목"
	require.NoError(t, store.Insert(ctx, second))

	var count int
	require.NoError(t, store.db.Get(&count, "SELECT COUNT(*) FROM product_table WHERE id = ?", "A"))
	assert.Equal(t, 1, count)

	var title string
	require.NoError(t, store.db.Get(&title, "SELECT title FROM product_table WHERE id = ?", "A"))
	assert.Equal(t, "로드 자전거", title)
}

func TestConcurrentInsertSameID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Insert(ctx, testEntry("A"))
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	var count int
	require.NoError(t, store.db.Get(&count, "SELECT COUNT(*) FROM product_table"))
	assert.Equal(t, 1, count)
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, testEntry("A")))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	ok, err := reopened.Exists(ctx, "A")
	require.NoError(t, err)
	assert.True(t, ok)
}

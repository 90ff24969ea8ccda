package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry(time.Hour, 0)
	t.Cleanup(r.Close)
	return r
}

func TestRegistry_GetMissing(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Get("nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRegistry_CreateAndGet(t *testing.T) {
	r := newTestRegistry(t)
	r.Create("s1", testProfile("Fresher"), []string{"chunk"})

	rec, err := r.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", rec.ID)
	assert.Equal(t, 5, rec.MaxQuestions)
	assert.Equal(t, []string{"chunk"}, rec.Chunks)
}

func TestRegistry_QuotaIsMonotonic(t *testing.T) {
	r := newTestRegistry(t)
	r.Create("s1", testProfile("Fresher"), nil)

	prev := 0
	for i := 0; i < 5; i++ {
		require.NoError(t, r.AppendRegular("s1", fmt.Sprintf("Q%d", i+1)))
		counted, err := r.AttachAnswer("s1", "answer")
		require.NoError(t, err)
		assert.True(t, counted)

		asked, max, err := r.Counts("s1")
		require.NoError(t, err)
		assert.Greater(t, asked, prev)
		assert.LessOrEqual(t, asked, max)
		prev = asked
	}
}

func TestRegistry_ConsumePregeneratedOnce(t *testing.T) {
	r := newTestRegistry(t)
	r.Create("s1", testProfile("Junior"), nil)

	_, ok, err := r.ConsumePregenerated("s1")
	require.NoError(t, err)
	assert.False(t, ok, "empty slot")

	r.SetPregenerated("s1", "What drew you to Go?")
	q, ok, err := r.ConsumePregenerated("s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "What drew you to Go?", q)

	_, ok, err = r.ConsumePregenerated("s1")
	require.NoError(t, err)
	assert.False(t, ok, "slot must be cleared by the first consume")
}

func TestRegistry_ConsumePregeneratedConcurrent(t *testing.T) {
	r := newTestRegistry(t)
	r.Create("s1", testProfile("Junior"), nil)
	r.SetPregenerated("s1", "only once")

	const workers = 32
	var wg sync.WaitGroup
	hits := make(chan string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if q, ok, _ := r.ConsumePregenerated("s1"); ok {
				hits <- q
			}
		}()
	}
	wg.Wait()
	close(hits)

	var got []string
	for q := range hits {
		got = append(got, q)
	}
	require.Len(t, got, 1, "exactly one consumer may win")
	assert.Equal(t, "only once", got[0])
}

func TestRegistry_SetPregeneratedAfterDeleteIsNoOp(t *testing.T) {
	r := newTestRegistry(t)
	r.Create("s1", testProfile("Junior"), nil)
	r.Delete("s1")

	// A late background deposit must be dropped silently.
	r.SetPregenerated("s1", "stale question")

	_, err := r.Get("s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRegistry_IdleEviction(t *testing.T) {
	r := NewRegistry(20*time.Millisecond, 0)
	defer r.Close()

	r.Create("stale", testProfile("Junior"), nil)
	time.Sleep(30 * time.Millisecond)
	r.Create("fresh", testProfile("Junior"), nil)

	evicted := r.CleanupExpired()
	assert.Equal(t, 1, evicted)

	_, err := r.Get("stale")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = r.Get("fresh")
	assert.NoError(t, err)
}

func TestRegistry_ConcurrentSessionsAreIndependent(t *testing.T) {
	r := newTestRegistry(t)

	const sessions = 64
	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s-%d", i)
			r.Create(id, testProfile("Fresher"), nil)
			require.NoError(t, r.AppendRegular(id, "Q1"))
			_, err := r.AttachAnswer(id, "A1")
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, sessions, r.Len())
	for i := 0; i < sessions; i++ {
		asked, _, err := r.Counts(fmt.Sprintf("s-%d", i))
		require.NoError(t, err)
		assert.Equal(t, 1, asked)
	}
}

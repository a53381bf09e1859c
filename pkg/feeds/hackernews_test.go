package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func setupHNServer(t *testing.T, handler http.HandlerFunc) *HackerNewsClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHackerNewsClientWithBaseURL(srv.Client(), srv.URL)
}

func TestTopStories_Limit(t *testing.T) {
	client := setupHNServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/topstories.json", r.URL.Path)
		json.NewEncoder(w).Encode([]int{1, 2, 3, 4, 5})
	})

	ids, err := client.TopStories(context.Background(), 3)

	assert.Equal(t, nil, err)
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestListings_Paths(t *testing.T) {
	var paths []string
	client := setupHNServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode([]int{7})
	})

	_, err := client.NewStories(context.Background(), 10)
	assert.Equal(t, nil, err)
	_, err = client.AskStories(context.Background(), 10)
	assert.Equal(t, nil, err)

	assert.Equal(t, []string{"/newstories.json", "/askstories.json"}, paths)
}

func TestTopStories_ServerError(t *testing.T) {
	client := setupHNServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	ids, err := client.TopStories(context.Background(), 10)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(ids))
}

func TestTopStories_InvalidJSON(t *testing.T) {
	client := setupHNServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.TopStories(context.Background(), 10)

	assert.NotEqual(t, nil, err)
}

func TestItem_Story(t *testing.T) {
	client := setupHNServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/item/42.json", r.URL.Path)
		w.Write([]byte(`{"id":42,"type":"story","title":"Ask HN: tooling","text":"so frustrating","score":120,"descendants":8,"kids":[43,44]}`))
	})

	item, err := client.Item(context.Background(), 42)

	assert.Equal(t, nil, err)
	assert.Equal(t, 42, item.ID)
	assert.Equal(t, "story", item.Type)
	assert.Equal(t, "Ask HN: tooling", item.Title)
	assert.Equal(t, 120, item.Score)
	assert.Equal(t, 8, item.Descendants)
	assert.Equal(t, []int{43, 44}, item.Kids)
}

func TestItem_NullBody(t *testing.T) {
	client := setupHNServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	})

	item, err := client.Item(context.Background(), 1)

	assert.Equal(t, true, errors.Is(err, ErrItemNotFound))
	assert.Equal(t, true, item == nil)
}

func TestItem_CancelledContext(t *testing.T) {
	client := setupHNServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Item(ctx, 1)

	assert.NotEqual(t, nil, err)
}

func TestHackerNewsItemURL(t *testing.T) {
	assert.Equal(t, "https://news.ycombinator.com/item?id=99", HackerNewsItemURL(99))
}

package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

const hotListing = `{"kind":"Listing","data":{"children":[
	{"kind":"t3","data":{"id":"a1","title":"Is there a tool for invoices?","selftext":"so frustrating","permalink":"/r/smallbusiness/comments/a1/x/","score":57,"num_comments":12}},
	{"kind":"t3","data":{"id":"a2","title":"Weekly thread","selftext":"","permalink":"/r/smallbusiness/comments/a2/y/","score":3,"num_comments":0}}
]}}`

const commentTree = `[
	{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"a1"}}]}},
	{"kind":"Listing","data":{"children":[
		{"kind":"t1","data":{"body":"top","score":10,"author":"u1","replies":{"kind":"Listing","data":{"children":[
			{"kind":"t1","data":{"body":"reply","score":4,"author":"u2","replies":{"kind":"Listing","data":{"children":[
				{"kind":"t1","data":{"body":"nested","score":1,"author":"u3","replies":""}}
			]}}}}
		]}}}},
		{"kind":"more","data":{"count":12,"children":["zz"]}},
		{"kind":"t1","data":{"body":"second","score":2,"author":"u4","replies":""}}
	]}}
]`

func setupRedditServer(t *testing.T, handler http.HandlerFunc) *RedditClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRedditClientWithBaseURL(srv.Client(), srv.URL, "TestBot/1.0")
}

func TestHotPosts(t *testing.T) {
	client := setupRedditServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/smallbusiness/hot.json", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "TestBot/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(hotListing))
	})

	posts, err := client.HotPosts(context.Background(), "smallbusiness", 25)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(posts))
	assert.Equal(t, "Is there a tool for invoices?", posts[0].Title)
	assert.Equal(t, "so frustrating", posts[0].Selftext)
	assert.Equal(t, "/r/smallbusiness/comments/a1/x/", posts[0].Permalink)
	assert.Equal(t, 57, posts[0].Score)
	assert.Equal(t, 12, posts[0].NumComments)
}

func TestHotPosts_Forbidden(t *testing.T) {
	client := setupRedditServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	posts, err := client.HotPosts(context.Background(), "private", 50)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(posts))
}

func TestComments_FlattensTree(t *testing.T) {
	client := setupRedditServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/smallbusiness/comments/a1/x/.json", r.URL.Path)
		w.Write([]byte(commentTree))
	})

	comments, err := client.Comments(context.Background(), "/r/smallbusiness/comments/a1/x/", 100)

	assert.Equal(t, nil, err)
	assert.Equal(t, 4, len(comments))

	var bodies []string
	for _, c := range comments {
		bodies = append(bodies, c.Body)
	}
	assert.Equal(t, []string{"top", "reply", "nested", "second"}, bodies)
	assert.Equal(t, 4, comments[1].Score)
	assert.Equal(t, "u2", comments[1].Author)
}

func TestComments_SingleListing(t *testing.T) {
	client := setupRedditServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"kind":"Listing","data":{"children":[]}}]`))
	})

	comments, err := client.Comments(context.Background(), "/r/x/comments/1/", 100)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(comments))
}

func TestRedditPermalinkURL(t *testing.T) {
	assert.Equal(t, "https://reddit.com/r/SaaS/comments/1/", RedditPermalinkURL("/r/SaaS/comments/1/"))
}

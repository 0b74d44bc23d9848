package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "test-key", "test-host", 5*time.Second, 3, time.Millisecond, 20)
}

func TestFetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/info" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("unique_id") != "creator_one" {
			t.Errorf("Unexpected unique_id: %s", r.URL.Query().Get("unique_id"))
		}
		if r.Header.Get("x-rapidapi-key") != "test-key" {
			t.Errorf("Missing API key header")
		}
		w.Write([]byte(`{
			"code": 0,
			"data": {
				"user": {"signature": "shop owner", "avatarThumb": "https://cdn/img.jpg"},
				"stats": {"followerCount": 1200, "followingCount": 34, "videoCount": 56}
			}
		}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	got := c.FetchProfile(context.Background(), "creator_one")

	if got.Handle != "creator_one" {
		t.Errorf("Unexpected handle: %s", got.Handle)
	}
	if got.Signature != "shop owner" {
		t.Errorf("Unexpected signature: %s", got.Signature)
	}
	if got.FollowerCount != 1200 || got.FollowingCount != 34 || got.VideoCount != 56 {
		t.Errorf("Unexpected stats: %+v", got)
	}
	if got.AvatarURL != "https://cdn/img.jpg" {
		t.Errorf("Unexpected avatar: %s", got.AvatarURL)
	}
}

func TestFetchProfileFailureReturnsDefault(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	got := c.FetchProfile(context.Background(), "broken")

	if !got.IsZero() {
		t.Errorf("Expected default snapshot, got %+v", got)
	}
	if got.Handle != "broken" {
		t.Errorf("Default snapshot should keep the handle, got %q", got.Handle)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("Expected 3 attempts, got %d", n)
	}
}

func TestFetchProfileAPIErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": -1, "msg": "user not found"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	got := c.FetchProfile(context.Background(), "ghost")
	if !got.IsZero() {
		t.Errorf("Expected default snapshot on API error, got %+v", got)
	}
}

func TestFetchProfileSentinelHandle(t *testing.T) {
	c := newTestClient("http://unused")
	for _, handle := range []string{"", "None"} {
		got := c.FetchProfile(context.Background(), handle)
		if !got.IsZero() {
			t.Errorf("Expected default snapshot for handle %q, got %+v", handle, got)
		}
	}
}

func TestFetchRecentPosts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/posts" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("count") != "20" {
			t.Errorf("Unexpected count: %s", r.URL.Query().Get("count"))
		}
		w.Write([]byte(`{
			"code": 0,
			"data": {
				"videos": [
					{"video_id": "v1", "title": "first", "play_count": 100, "digg_count": 10, "share_count": 1, "create_time": 1700000000},
					{"video_id": "v2", "title": "second", "play_count": 200, "digg_count": 20, "share_count": 2, "create_time": 1700086400}
				]
			}
		}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	got := c.FetchRecentPosts(context.Background(), "creator_one")

	if len(got) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(got))
	}
	if got[0].VideoID != "v1" || got[0].PlayCount != 100 {
		t.Errorf("Unexpected first post: %+v", got[0])
	}
	if got[1].CreateTime != 1700086400 {
		t.Errorf("Unexpected create time: %d", got[1].CreateTime)
	}
}

func TestFetchRecentPostsRetriesThenEmpty(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"code": -1, "msg": "rate limited"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	got := c.FetchRecentPosts(context.Background(), "creator_one")

	if len(got) != 0 {
		t.Errorf("Expected no posts, got %d", len(got))
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("Expected 3 attempts, got %d", n)
	}
}

func TestFetchRecentPostsRecoversAfterTransientFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"code": 0, "data": {"videos": [{"video_id": "v1", "title": "ok", "play_count": 5}]}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	got := c.FetchRecentPosts(context.Background(), "creator_one")

	if len(got) != 1 || got[0].VideoID != "v1" {
		t.Fatalf("Expected recovered fetch, got %+v", got)
	}
}

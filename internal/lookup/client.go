// Package lookup provides access to the profile and posts lookup API.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/brandlens/brandlens/internal/logger"
	"github.com/brandlens/brandlens/internal/models"
	"github.com/brandlens/brandlens/internal/retry"
)

// Client fetches creator profiles and recent posts from the lookup API.
type Client struct {
	apiBaseURL  string
	apiKey      string
	apiHost     string
	httpClient  *http.Client
	retryPolicy retry.Policy
	postsCount  int
}

// envelope is the common response wrapper of the lookup API. A code of
// zero means success.
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type userInfoData struct {
	User struct {
		Signature   string `json:"signature"`
		AvatarThumb string `json:"avatarThumb"`
	} `json:"user"`
	Stats struct {
		FollowerCount  int `json:"followerCount"`
		FollowingCount int `json:"followingCount"`
		VideoCount     int `json:"videoCount"`
	} `json:"stats"`
}

type postsData struct {
	Videos []apiVideo `json:"videos"`
}

type apiVideo struct {
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	PlayCount  int64  `json:"play_count"`
	DiggCount  int64  `json:"digg_count"`
	ShareCount int64  `json:"share_count"`
	CreateTime int64  `json:"create_time"`
}

// NewClient creates a new lookup client.
func NewClient(apiBaseURL, apiKey, apiHost string, timeout time.Duration, maxRetries int, retryDelayBase time.Duration, postsCount int) *Client {
	return &Client{
		apiBaseURL: apiBaseURL,
		apiKey:     apiKey,
		apiHost:    apiHost,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retryPolicy: retry.Policy{
			MaxAttempts: maxRetries,
			BaseDelay:   retryDelayBase,
		},
		postsCount: postsCount,
	}
}

// FetchProfile retrieves a creator's profile. On any failure, after
// retries, it returns the all-zero default snapshot rather than an
// error; callers must tolerate a default snapshot.
func (c *Client) FetchProfile(ctx context.Context, handle string) models.ProfileSnapshot {
	snapshot := models.ProfileSnapshot{Handle: handle}
	if handle == "" || handle == "None" {
		return snapshot
	}

	endpoint := fmt.Sprintf("%s/user/info?unique_id=%s", c.apiBaseURL, url.QueryEscape(handle))

	err := c.retryPolicy.Do(ctx, func() error {
		data, err := c.fetch(ctx, endpoint)
		if err != nil {
			return err
		}
		var info userInfoData
		if err := json.Unmarshal(data, &info); err != nil {
			return fmt.Errorf("failed to decode user info: %w", err)
		}
		snapshot.Signature = info.User.Signature
		snapshot.AvatarURL = info.User.AvatarThumb
		snapshot.FollowerCount = info.Stats.FollowerCount
		snapshot.FollowingCount = info.Stats.FollowingCount
		snapshot.VideoCount = info.Stats.VideoCount
		return nil
	})
	if err != nil {
		logger.Warn("Profile lookup for %s failed, using default snapshot: %v", handle, err)
		return models.ProfileSnapshot{Handle: handle}
	}
	return snapshot
}

// FetchRecentPosts retrieves a creator's recent posts. Exhausted
// retries yield an empty list, never an error.
func (c *Client) FetchRecentPosts(ctx context.Context, handle string) []models.RecentPost {
	if handle == "" || handle == "None" {
		return nil
	}

	endpoint := fmt.Sprintf("%s/user/posts?unique_id=%s&count=%d&cursor=0", c.apiBaseURL, url.QueryEscape(handle), c.postsCount)

	var posts []models.RecentPost
	err := c.retryPolicy.Do(ctx, func() error {
		data, err := c.fetch(ctx, endpoint)
		if err != nil {
			return err
		}
		var pd postsData
		if err := json.Unmarshal(data, &pd); err != nil {
			return fmt.Errorf("failed to decode posts: %w", err)
		}
		posts = posts[:0]
		for _, v := range pd.Videos {
			posts = append(posts, models.RecentPost{
				VideoID:    v.VideoID,
				Title:      v.Title,
				PlayCount:  v.PlayCount,
				DiggCount:  v.DiggCount,
				ShareCount: v.ShareCount,
				CreateTime: v.CreateTime,
			})
		}
		return nil
	})
	if err != nil {
		logger.Warn("Posts lookup for %s failed, treating as no posts: %v", handle, err)
		return nil
	}
	logger.Debug("Fetched %d posts for %s", len(posts), handle)
	return posts
}

// fetch performs a single authenticated GET and unwraps the envelope.
func (c *Client) fetch(ctx context.Context, endpoint string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-rapidapi-host", c.apiHost)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if env.Code != 0 {
		return nil, fmt.Errorf("api error %d: %s", env.Code, env.Msg)
	}
	return env.Data, nil
}

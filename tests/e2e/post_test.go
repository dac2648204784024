package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"
)

const baseURL = "http://localhost:8080/api/v1"

type CreateProfileRequest struct {
	Name     string `json:"name"`
	Handle   string `json:"handle"`
	Platform string `json:"platform"`
	Active   bool   `json:"active"`
}

type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Handle   string `json:"handle"`
	Platform string `json:"platform"`
	Active   bool   `json:"active"`
}

type CopyItem struct {
	Platform string `json:"platform"`
	Content  string `json:"content"`
}

type CreatePostRequest struct {
	PostAt      string     `json:"post_at"`
	ProfileIDs  []string   `json:"profile_ids"`
	ContentType string     `json:"content_type"`
	Format      string     `json:"format,omitempty"`
	Copies      []CopyItem `json:"copies,omitempty"`
	Hashtags    []string   `json:"hashtags,omitempty"`
	LaunchID    *string    `json:"launch_id,omitempty"`
}

type UpdatePostRequest struct {
	PostAt     *string  `json:"post_at,omitempty"`
	ProfileIDs []string `json:"profile_ids,omitempty"`
	Hashtags   []string `json:"hashtags,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type Post struct {
	ID          string     `json:"id"`
	PostAt      time.Time  `json:"post_at"`
	ProfileIDs  []string   `json:"profile_ids"`
	ProfileID   string     `json:"profile_id,omitempty"`
	ContentType string     `json:"content_type"`
	Copies      []CopyItem `json:"copies"`
	Hashtags    []string   `json:"hashtags"`
	Status      string     `json:"status"`
	LaunchID    *string    `json:"launch_id,omitempty"`
}

type PostListResponse struct {
	Items []Post `json:"items"`
	Total int    `json:"total"`
}

type CalendarResponse struct {
	Year  int               `json:"year"`
	Month int               `json:"month"`
	Days  map[string][]Post `json:"days"`
}

func createTestProfile(t *testing.T, handle string) Profile {
	t.Helper()

	body, _ := json.Marshal(CreateProfileRequest{
		Name:     "E2E " + handle,
		Handle:   handle,
		Platform: "Instagram",
		Active:   true,
	})
	resp, err := http.Post(baseURL+"/profiles", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to create profile: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d: %s", resp.StatusCode, string(respBody))
	}

	var prof Profile
	if err := json.NewDecoder(resp.Body).Decode(&prof); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return prof
}

func createTestPost(t *testing.T, profileID string, postAt time.Time) Post {
	t.Helper()

	body, _ := json.Marshal(CreatePostRequest{
		PostAt:      postAt.Format(time.RFC3339),
		ProfileIDs:  []string{profileID},
		ContentType: "post",
		Copies: []CopyItem{
			{Platform: "Instagram", Content: "e2e test copy"},
		},
		Hashtags: []string{"e2e"},
	})
	resp, err := http.Post(baseURL+"/posts", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d: %s", resp.StatusCode, string(respBody))
	}

	var post Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return post
}

func deleteResource(t *testing.T, path string) {
	t.Helper()

	req, _ := http.NewRequest(http.MethodDelete, baseURL+path, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Logf("Warning: Failed to delete %s: %v", path, err)
		return
	}
	defer resp.Body.Close()
}

// TestPostLifecycle tests create, read, update, status change and delete
func TestPostLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	prof := createTestProfile(t, fmt.Sprintf("e2e_post_%d", time.Now().UnixNano()))
	defer deleteResource(t, "/profiles/"+prof.ID)

	postAt := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	post := createTestPost(t, prof.ID, postAt)
	defer deleteResource(t, "/posts/"+post.ID)

	t.Run("create mirrors first profile", func(t *testing.T) {
		if post.Status != "draft" {
			t.Errorf("Expected status draft, got %s", post.Status)
		}
		if post.ProfileID != prof.ID {
			t.Errorf("Expected profile_id %s, got %s", prof.ID, post.ProfileID)
		}
	})

	t.Run("get returns the post", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/posts/" + post.ID)
		if err != nil {
			t.Fatalf("Failed to get post: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		var got Post
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if got.ID != post.ID {
			t.Errorf("Expected id %s, got %s", post.ID, got.ID)
		}
		if len(got.Copies) != 1 || got.Copies[0].Content != "e2e test copy" {
			t.Errorf("Expected the created copy back, got %+v", got.Copies)
		}
	})

	t.Run("update hashtags", func(t *testing.T) {
		body, _ := json.Marshal(UpdatePostRequest{Hashtags: []string{"e2e", "updated"}})
		req, _ := http.NewRequest(http.MethodPut, baseURL+"/posts/"+post.ID, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("Failed to update post: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(resp.Body)
			t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, string(respBody))
		}

		var got Post
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(got.Hashtags) != 2 {
			t.Errorf("Expected 2 hashtags, got %d", len(got.Hashtags))
		}
	})

	t.Run("status advances draft to pending", func(t *testing.T) {
		body, _ := json.Marshal(StatusRequest{Status: "pending"})
		resp, err := http.Post(baseURL+"/posts/"+post.ID+"/status", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("Failed to change status: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(resp.Body)
			t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, string(respBody))
		}
	})

	t.Run("status cannot revert to draft", func(t *testing.T) {
		body, _ := json.Marshal(StatusRequest{Status: "draft"})
		resp, err := http.Post(baseURL+"/posts/"+post.ID+"/status", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("Failed to change status: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", resp.StatusCode)
		}
	})
}

// TestPostCalendar tests GET /posts/calendar
func TestPostCalendar(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	prof := createTestProfile(t, fmt.Sprintf("e2e_cal_%d", time.Now().UnixNano()))
	defer deleteResource(t, "/profiles/"+prof.ID)

	postAt := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	post := createTestPost(t, prof.ID, postAt)
	defer deleteResource(t, "/posts/"+post.ID)

	url := fmt.Sprintf("%s/posts/calendar?year=%d&month=%d", baseURL, postAt.Year(), int(postAt.Month()))
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("Failed to get calendar: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, string(respBody))
	}

	var cal CalendarResponse
	if err := json.NewDecoder(resp.Body).Decode(&cal); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	day := postAt.Format("2006-01-02")
	found := false
	for _, p := range cal.Days[day] {
		if p.ID == post.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected post %s under day %s", post.ID, day)
	}
}

// TestPostListFilters tests GET /posts with query filters
func TestPostListFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	prof := createTestProfile(t, fmt.Sprintf("e2e_list_%d", time.Now().UnixNano()))
	defer deleteResource(t, "/profiles/"+prof.ID)

	postAt := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	post := createTestPost(t, prof.ID, postAt)
	defer deleteResource(t, "/posts/"+post.ID)

	t.Run("filter by profile", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/posts?profile_id=" + prof.ID)
		if err != nil {
			t.Fatalf("Failed to list posts: %v", err)
		}
		defer resp.Body.Close()

		var list PostListResponse
		if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if list.Total != 1 {
			t.Errorf("Expected 1 post for profile, got %d", list.Total)
		}
	})

	t.Run("filter by date range", func(t *testing.T) {
		from := postAt.Add(-time.Hour).Format(time.RFC3339)
		to := postAt.Add(time.Hour).Format(time.RFC3339)
		resp, err := http.Get(fmt.Sprintf("%s/posts?from=%s&to=%s", baseURL, from, to))
		if err != nil {
			t.Fatalf("Failed to list posts: %v", err)
		}
		defer resp.Body.Close()

		var list PostListResponse
		if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		found := false
		for _, p := range list.Items {
			if p.ID == post.ID {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected post %s in date range result", post.ID)
		}
	})
}

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

type CreateLaunchRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type CreatePhaseRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Launch struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type Phase struct {
	ID       string `json:"id"`
	LaunchID string `json:"launch_id"`
	Name     string `json:"name"`
}

type PhaseListResponse struct {
	Items []Phase `json:"items"`
	Total int     `json:"total"`
}

func createTestLaunch(t *testing.T, name string, start, end time.Time) Launch {
	t.Helper()

	body, _ := json.Marshal(CreateLaunchRequest{
		Name:      name,
		Category:  "campaign",
		StartDate: start.Format(time.RFC3339),
		EndDate:   end.Format(time.RFC3339),
	})
	resp, err := http.Post(baseURL+"/launches", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to create launch: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d: %s", resp.StatusCode, string(respBody))
	}

	var launch Launch
	if err := json.NewDecoder(resp.Body).Decode(&launch); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return launch
}

func createTestPhase(t *testing.T, launchID, name string, start, end time.Time) Phase {
	t.Helper()

	body, _ := json.Marshal(CreatePhaseRequest{
		Name:      name,
		StartDate: start.Format(time.RFC3339),
		EndDate:   end.Format(time.RFC3339),
	})
	resp, err := http.Post(baseURL+"/launches/"+launchID+"/phases", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to create phase: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d: %s", resp.StatusCode, string(respBody))
	}

	var phase Phase
	if err := json.NewDecoder(resp.Body).Decode(&phase); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return phase
}

// TestLaunchDeleteCascades tests that deleting a launch removes its phases
// and detaches its posts in one step
func TestLaunchDeleteCascades(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	prof := createTestProfile(t, fmt.Sprintf("e2e_launch_%d", time.Now().UnixNano()))
	defer deleteResource(t, "/profiles/"+prof.ID)

	start := time.Now().UTC().Truncate(time.Second)
	end := start.Add(14 * 24 * time.Hour)
	launch := createTestLaunch(t, fmt.Sprintf("E2E launch %d", time.Now().UnixNano()), start, end)

	createTestPhase(t, launch.ID, "Teaser", start, start.Add(7*24*time.Hour))
	createTestPhase(t, launch.ID, "Drop", start.Add(7*24*time.Hour), end)

	postAt := start.Add(24 * time.Hour)
	body, _ := json.Marshal(CreatePostRequest{
		PostAt:      postAt.Format(time.RFC3339),
		ProfileIDs:  []string{prof.ID},
		ContentType: "post",
		LaunchID:    &launch.ID,
	})
	resp, err := http.Post(baseURL+"/posts", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.Fatalf("Expected status 201, got %d: %s", resp.StatusCode, string(respBody))
	}
	var post Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		resp.Body.Close()
		t.Fatalf("Failed to decode response: %v", err)
	}
	resp.Body.Close()
	defer deleteResource(t, "/posts/"+post.ID)

	if post.LaunchID == nil || *post.LaunchID != launch.ID {
		t.Fatalf("Expected post attached to launch %s, got %v", launch.ID, post.LaunchID)
	}

	req, _ := http.NewRequest(http.MethodDelete, baseURL+"/launches/"+launch.ID, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to delete launch: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", delResp.StatusCode)
	}

	t.Run("launch is gone", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/launches/" + launch.ID)
		if err != nil {
			t.Fatalf("Failed to get launch: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", resp.StatusCode)
		}
	})

	t.Run("phases are removed", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/launches/" + launch.ID + "/phases")
		if err != nil {
			t.Fatalf("Failed to list phases: %v", err)
		}
		defer resp.Body.Close()

		var list PhaseListResponse
		if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if list.Total != 0 {
			t.Errorf("Expected 0 phases after cascade, got %d", list.Total)
		}
	})

	t.Run("post is detached, not deleted", func(t *testing.T) {
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
		if got.LaunchID != nil {
			t.Errorf("Expected launch_id cleared, got %v", *got.LaunchID)
		}
	})
}

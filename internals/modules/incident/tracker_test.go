package incident

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"statusboard/config"
	"testing"
	"time"
)

func newGitHubServer(t *testing.T) (*GitHubTracker, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	tr, err := NewGitHubTracker(&config.GitHubConfig{
		Owner:   "acme",
		Repo:    "status",
		Token:   "gh-token",
		BaseURL: srv.URL,
		Timeout: time.Second,
	}, srv.Client())
	if err != nil {
		t.Fatal(err)
	}
	return tr, mux
}

func TestGitHubTracker_CreateIssue(t *testing.T) {
	tr, mux := newGitHubServer(t)

	mux.HandleFunc("POST /repos/acme/status/issues", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer gh-token" {
			t.Errorf("Authorization = %q", got)
		}
		var req struct {
			Title  string   `json:"title"`
			Body   string   `json:"body"`
			Labels []string `json:"labels"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Title != "API down" || req.Body != "details" || !reflect.DeepEqual(req.Labels, []string{"incident", "api"}) {
			t.Errorf("request = %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"number":12,"title":%q,"body":%q,"state":"open","labels":[{"name":"incident"},{"name":"api"}]}`, req.Title, req.Body)
	})

	issue, err := tr.CreateIssue(context.Background(), "API down", "details", []string{"incident", "api"})
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	if issue.GetNumber() != 12 || issue.GetBody() != "details" || len(issue.Labels) != 2 {
		t.Errorf("issue = %+v", issue)
	}
}

func TestGitHubTracker_CreateIssueError(t *testing.T) {
	tr, mux := newGitHubServer(t)
	mux.HandleFunc("POST /repos/acme/status/issues", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"Resource not accessible by integration"}`)
	})

	if _, err := tr.CreateIssue(context.Background(), "t", "b", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestGitHubTracker_GetIssue(t *testing.T) {
	tr, mux := newGitHubServer(t)
	mux.HandleFunc("GET /repos/acme/status/issues/12", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"number":12,"title":"API down","state":"closed","closed_at":"2024-01-15T12:00:00Z"}`)
	})

	issue, err := tr.GetIssue(context.Background(), 12)
	if err != nil {
		t.Fatalf("GetIssue: %v", err)
	}
	if issue.GetState() != "closed" || issue.ClosedAt == nil {
		t.Errorf("issue = %+v", issue)
	}
}

func TestGitHubTracker_ListCommentsFollowsPages(t *testing.T) {
	tr, mux := newGitHubServer(t)
	var srvURL string
	mux.HandleFunc("GET /repos/acme/status/issues/12/comments", func(w http.ResponseWriter, r *http.Request) {
		if srvURL == "" {
			srvURL = "http://" + r.Host
		}
		if q := r.URL.Query(); q.Get("sort") != "created" || q.Get("direction") != "asc" {
			t.Errorf("query = %v, want sort=created direction=asc", q)
		}
		switch r.URL.Query().Get("page") {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/status/issues/12/comments?page=2>; rel="next"`, srvURL))
			fmt.Fprint(w, `[{"body":"first"},{"body":"second"}]`)
		case "2":
			fmt.Fprint(w, `[{"body":"third"}]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	comments, err := tr.ListComments(context.Background(), 12)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	var bodies []string
	for _, c := range comments {
		bodies = append(bodies, c.GetBody())
	}
	if !reflect.DeepEqual(bodies, []string{"first", "second", "third"}) {
		t.Errorf("bodies = %v", bodies)
	}
}

package decompose

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sooahn/daygoal/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", "gemini-1.5-flash", 5*time.Second).WithBaseURL(server.URL)
}

func candidateResponse(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + jsonString(text) + `}]}}]}`
}

func jsonString(s string) string {
	out := `"`
	for _, r := range s {
		switch r {
		case '"':
			out += `\"`
		case '\\':
			out += `\\`
		case '\n':
			out += `\n`
		default:
			out += string(r)
		}
	}
	return out + `"`
}

func TestBreakdownParsesTaskArray(t *testing.T) {
	reply := "Here is your plan:\n" +
		`[{"title":"Set up workspace","description":"Install the tools.","difficulty":"easy","estimatedHours":1},` +
		`{"title":"Build the core","description":"Write the main logic.","difficulty":"hard","estimatedHours":4}]`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in %s", r.URL.String())
		}
		w.Write([]byte(candidateResponse(reply)))
	})

	stubs, err := client.Breakdown(context.Background(), Request{GoalTitle: "Learn Go", Deadline: "2026-10-01"})
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(stubs) != 2 {
		t.Fatalf("expected 2 stubs, got %d", len(stubs))
	}
	if stubs[0].Title != "Set up workspace" || stubs[0].Difficulty != models.DifficultyEasy {
		t.Fatalf("unexpected first stub: %+v", stubs[0])
	}
	if stubs[1].EstimatedHours != 4 {
		t.Fatalf("estimatedHours = %v", stubs[1].EstimatedHours)
	}
}

func TestBreakdownDefaultsUnknownDifficulty(t *testing.T) {
	reply := `[{"title":"Do the thing","description":"","difficulty":"impossible","estimatedHours":2}]`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse(reply)))
	})

	stubs, err := client.Breakdown(context.Background(), Request{GoalTitle: "Goal"})
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if stubs[0].Difficulty != models.DifficultyMedium {
		t.Fatalf("difficulty = %q, want medium", stubs[0].Difficulty)
	}
}

func TestBreakdownErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"non-2xx with api error body",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
			},
		},
		{
			"non-2xx without body",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			"malformed json body",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates":`))
			},
		},
		{
			"no candidates",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates":[]}`))
			},
		},
		{
			"no json array in text",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(candidateResponse("Sorry, I cannot help with that.")))
			},
		},
		{
			"invalid task array",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(candidateResponse(`[{"title": 42}]`)))
			},
		},
		{
			"empty task array",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(candidateResponse(`[]`)))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, tc.handler)
			stubs, err := client.Breakdown(context.Background(), Request{GoalTitle: "Goal"})
			if stubs != nil {
				t.Fatalf("expected no stubs, got %d", len(stubs))
			}
			var derr *Error
			if !errors.As(err, &derr) {
				t.Fatalf("expected *decompose.Error, got %T: %v", err, err)
			}
			if derr.Unwrap() == nil {
				t.Fatal("error carries no cause")
			}
		})
	}
}

func TestBreakdownHonorsContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background read; otherwise
		// it never notices the client disconnect and r.Context() stays open.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Breakdown(ctx, Request{GoalTitle: "Goal"})
	var derr *Error
	if !errors.As(err, &derr) {
		t.Fatalf("expected *decompose.Error, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded in chain, got %v", err)
	}
}

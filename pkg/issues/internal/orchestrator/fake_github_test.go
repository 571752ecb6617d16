package orchestrator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/compozy/issues-action/pkg/issues/internal/repository"
	"github.com/google/go-github/v74/github"
	"github.com/stretchr/testify/require"
)

// fakeGithub serves just enough of the issues API for a run and records every
// request as "METHOD /path".
type fakeGithub struct {
	mu       sync.Mutex
	calls    []string
	bodies   map[int]string
	labels   map[int][]string
	comments map[int][]string
	failOn   map[string]int
}

func newFakeGithub() *fakeGithub {
	return &fakeGithub{
		bodies:   make(map[int]string),
		labels:   make(map[int][]string),
		comments: make(map[int][]string),
		failOn:   make(map[string]int),
	}
}

func (f *fakeGithub) repository(t *testing.T) repository.IssueRepository {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/hello/issues/{number}", f.handle(f.getIssue))
	mux.HandleFunc("PATCH /repos/octo/hello/issues/{number}", f.handle(f.editIssue))
	mux.HandleFunc("POST /repos/octo/hello/issues/{number}/labels", f.handle(f.addLabels))
	mux.HandleFunc("DELETE /repos/octo/hello/issues/{number}/labels/{name}", f.handle(f.removeLabel))
	mux.HandleFunc("POST /repos/octo/hello/issues/{number}/comments", f.handle(f.createComment))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL
	return repository.NewGithubRepositoryFromClient(client, repository.RetryPolicy{BaseDelay: time.Millisecond})
}

func (f *fakeGithub) handle(next func(http.ResponseWriter, *http.Request, int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		call := r.Method + " " + r.URL.Path
		f.mu.Lock()
		f.calls = append(f.calls, call)
		status, fail := f.failOn[call]
		f.mu.Unlock()
		if fail {
			w.WriteHeader(status)
			fmt.Fprintf(w, `{"message":"%s"}`, http.StatusText(status))
			return
		}
		var number int
		fmt.Sscanf(r.PathValue("number"), "%d", &number)
		f.mu.Lock()
		defer f.mu.Unlock()
		next(w, r, number)
	}
}

func (f *fakeGithub) getIssue(w http.ResponseWriter, _ *http.Request, number int) {
	json.NewEncoder(w).Encode(map[string]any{"number": number, "body": f.bodies[number]})
}

func (f *fakeGithub) editIssue(w http.ResponseWriter, r *http.Request, number int) {
	var req struct {
		Body string `json:"body"`
	}
	json.NewDecoder(r.Body).Decode(&req)
	f.bodies[number] = req.Body
	json.NewEncoder(w).Encode(map[string]any{"number": number, "body": req.Body})
}

func (f *fakeGithub) addLabels(w http.ResponseWriter, r *http.Request, number int) {
	var names []string
	json.NewDecoder(r.Body).Decode(&names)
	f.labels[number] = append(f.labels[number], names...)
	labels := make([]map[string]string, 0, len(f.labels[number]))
	for _, name := range f.labels[number] {
		labels = append(labels, map[string]string{"name": name})
	}
	json.NewEncoder(w).Encode(labels)
}

func (f *fakeGithub) removeLabel(w http.ResponseWriter, r *http.Request, number int) {
	name := r.PathValue("name")
	for i, existing := range f.labels[number] {
		if existing == name {
			f.labels[number] = append(f.labels[number][:i], f.labels[number][i+1:]...)
			fmt.Fprint(w, `[]`)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `{"message":"Label does not exist"}`)
}

func (f *fakeGithub) createComment(w http.ResponseWriter, r *http.Request, number int) {
	var req struct {
		Body string `json:"body"`
	}
	json.NewDecoder(r.Body).Decode(&req)
	f.comments[number] = append(f.comments[number], req.Body)
	w.WriteHeader(http.StatusCreated)
	fmt.Fprintf(w, `{"id":%d,"html_url":"https://github.com/octo/hello/issues/%d"}`, len(f.comments[number]), number)
}

func (f *fakeGithub) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGithub) count(prefix string) int {
	n := 0
	for _, call := range f.recorded() {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}

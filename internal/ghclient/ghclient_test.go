package ghclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHost returns a GitHubHost pointed at a local test server.
func newTestHost(t *testing.T, handler http.Handler) *GitHubHost {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL
	return NewWithClient(client)
}

func TestDefaultBranch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"hello","default_branch":"develop"}`)
	})
	host := newTestHost(t, mux)

	branch, err := host.DefaultBranch(context.Background(), "octocat", "hello")
	require.NoError(t, err)
	assert.Equal(t, "develop", branch)
}

func TestDefaultBranchFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"hello"}`)
	})
	host := newTestHost(t, mux)

	branch, err := host.DefaultBranch(context.Background(), "octocat", "hello")
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestListFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		fmt.Fprint(w, `{
			"sha": "abc123",
			"tree": [
				{"path": "src", "type": "tree"},
				{"path": "src/app.py", "type": "blob", "size": 120},
				{"path": "src/util.py", "type": "blob", "size": 48},
				{"path": "README.md", "type": "blob", "size": 10}
			]
		}`)
	})
	host := newTestHost(t, mux)

	paths, err := host.ListFiles(context.Background(), "octocat", "hello", "main")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/app.py", "src/util.py", "README.md"}, paths)
}

func TestFileContent(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("def main():\n    pass\n"))
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello/contents/src/app.py", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"type":"file","path":"src/app.py","encoding":"base64","content":%q}`, encoded)
	})
	host := newTestHost(t, mux)

	content, err := host.FileContent(context.Background(), "octocat", "hello", "src/app.py")
	require.NoError(t, err)
	assert.Equal(t, "def main():\n    pass\n", content)
}

func TestFileContentError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello/contents/missing.py", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})
	host := newTestHost(t, mux)

	_, err := host.FileContent(context.Background(), "octocat", "hello", "missing.py")
	assert.Error(t, err)
}

package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), "mhristof/ghup", "")
	require.NoError(t, err)
	require.NoError(t, client.SetBaseURL(srv.URL))

	return client
}

func TestParse(t *testing.T) {
	cases := []struct {
		name       string
		repository string
		owner      string
		repo       string
		err        bool
	}{
		{
			name:       "owner and repo",
			repository: "mhristof/ghup",
			owner:      "mhristof",
			repo:       "ghup",
		},
		{
			name:       "trailing slash",
			repository: "mhristof/ghup/",
			owner:      "mhristof",
			repo:       "ghup",
		},
		{
			name:       "missing repo",
			repository: "mhristof",
			err:        true,
		},
		{
			name:       "too many fields",
			repository: "github.com/mhristof/ghup",
			err:        true,
		},
		{
			name:       "empty",
			repository: "",
			err:        true,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			owner, repo, err := Parse(test.repository)

			if test.err {
				assert.Error(t, err, test.name)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.owner, owner, test.name)
			assert.Equal(t, test.repo, repo, test.name)
		})
	}
}

func TestTagRefs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/mhristof/ghup/git/matching-refs/tags", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"ref":"refs/tags/v1.0"},{"ref":"refs/tags/v1.1"},{"ref":"refs/tags/v2.0"}]`)
	})

	client := newTestClient(t, mux)

	refs, err := client.TagRefs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"refs/tags/v1.0", "refs/tags/v1.1", "refs/tags/v2.0"}, refs)
}

func TestTagRefsPagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/mhristof/ghup/git/matching-refs/tags", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"ref":"refs/tags/v2.0"}]`)

			return
		}

		w.Header().Set("Link", fmt.Sprintf(
			`<http://%s/repos/mhristof/ghup/git/matching-refs/tags?page=2>; rel="next"`, r.Host))
		fmt.Fprint(w, `[{"ref":"refs/tags/v1.0"}]`)
	})

	client := newTestClient(t, mux)

	refs, err := client.TagRefs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"refs/tags/v1.0", "refs/tags/v2.0"}, refs)
}

func TestBranches(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/mhristof/ghup/branches", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name":"main","protected":true},{"name":"dev","protected":false}]`)
	})

	client := newTestClient(t, mux)

	branches, err := client.Branches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Branch{
		{Name: "main", Protected: true},
		{Name: "dev", Protected: false},
	}, branches)
}

func TestAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found","documentation_url":"https://docs.github.com/rest"}`)
	})

	client := newTestClient(t, mux)

	_, err := client.TagRefs(context.Background())
	require.Error(t, err)

	var apiErr *APIError

	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Not Found", apiErr.Message)
	assert.Equal(t, "https://docs.github.com/rest", apiErr.DocumentationURL)
}

func TestRateLimitError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "1700000000")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"API rate limit exceeded for 1.2.3.4.","documentation_url":"https://docs.github.com/rest/overview/resources-in-the-rest-api#rate-limiting"}`)
	})

	client := newTestClient(t, mux)

	_, err := client.TagRefs(context.Background())
	require.Error(t, err)

	var apiErr *APIError

	require.True(t, errors.As(err, &apiErr), "rate limit is an API error, not a transport failure")
	assert.Equal(t, "API rate limit exceeded for 1.2.3.4.", apiErr.Message)
	assert.Equal(t, rateLimitDocsURL, apiErr.DocumentationURL)
}

func TestSecondaryRateLimitError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"You have exceeded a secondary rate limit.","documentation_url":"https://docs.github.com/rest/overview/resources-in-the-rest-api#secondary-rate-limits"}`)
	})

	client := newTestClient(t, mux)

	_, err := client.Branches(context.Background())
	require.Error(t, err)

	var apiErr *APIError

	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "You have exceeded a secondary rate limit.", apiErr.Message)
	assert.Equal(t, rateLimitDocsURL, apiErr.DocumentationURL)
}

func TestFetchError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())

	client, err := New(context.Background(), "mhristof/ghup", "")
	require.NoError(t, err)
	require.NoError(t, client.SetBaseURL(srv.URL))

	// server gone, the request never gets an HTTP status
	srv.Close()

	_, err = client.TagRefs(context.Background())
	require.Error(t, err)

	var fetchErr *FetchError

	assert.True(t, errors.As(err, &fetchErr))
}

func TestFetchErrorOnCancelledContext(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	client := newTestClient(t, mux)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Branches(ctx)
	require.Error(t, err)

	var fetchErr *FetchError

	assert.True(t, errors.As(err, &fetchErr))
}

func TestURLs(t *testing.T) {
	client, err := New(context.Background(), "mhristof/ghup", "")
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/mhristof/ghup/", client.RepoURL())
	assert.Equal(t, "https://raw.githubusercontent.com/mhristof/ghup/v1.0/", client.RegistryURL("v1.0"))
}

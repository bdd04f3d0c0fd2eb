package lh

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBookmarksPaginates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/bookmarks", r.URL.Path)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		switch page {
		case 1:
			fmt.Fprint(w, `{"bookmarks":[{"id":"a","title":"A"},{"id":"b","title":"B"}],"total":3,"page":1,"per_page":2}`)
		case 2:
			fmt.Fprint(w, `{"bookmarks":[{"id":"c","title":"C"}],"total":3,"page":2,"per_page":2}`)
		default:
			t.Fatalf("unexpected page %d", page)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	got, err := c.ListBookmarks(context.Background(), ListBookmarksOpts{PerPage: 2})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[2].ID)
}

func TestListBookmarksRequiresToken(t *testing.T) {
	c := New("http://unused", "")
	_, err := c.ListBookmarks(context.Background(), ListBookmarksOpts{})
	require.Error(t, err)
}

func TestListTagsAndFolders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/tags":
			fmt.Fprint(w, `{"tags":[{"id":"t1","name":"go","count":7}]}`)
		case "/api/v1/folders":
			fmt.Fprint(w, `{"folders":[{"id":"f1","name":"inbox","count":12}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	tags, err := c.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "go", tags[0].Name)

	folders, err := c.ListFolders(context.Background())
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, 12, folders[0].Count)
}

func TestPingSurfacesAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "bad")
	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

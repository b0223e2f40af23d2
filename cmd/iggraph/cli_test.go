package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "iggraph/pkg/errors"
	"iggraph/pkg/graph"
	"iggraph/pkg/token"
)

type cliEnv struct {
	app    *app
	server *httptest.Server
	store  *token.MemoryStore
}

func newCLIEnv(t *testing.T, handler http.HandlerFunc) *cliEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{"IGGRAPH_ACCESS_TOKEN", "IGGRAPH_BASE_URL", "IGGRAPH_API_VERSION", "IGGRAPH_PROFILE", "IGGRAPH_PAGE_SIZE", "IGGRAPH_LOG_LEVEL", "IGGRAPH_LOG_FILE"} {
		t.Setenv(name, "")
	}

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := token.NewMemoryStore()
	a := newApp()
	a.tokens = store

	return &cliEnv{app: a, server: server, store: store}
}

func (e *cliEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	e.app.cfg = nil
	cmd := newRootCmd(e.app)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--base-url", e.server.URL, "--log-level", "disabled"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func userHandler(t *testing.T, wantToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		if r.URL.Query().Get("access_token") != wantToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","type":"OAuthException","code":190}}`))
			return
		}
		w.Write([]byte(`{"id":"123","username":"alice","media_count":4}`))
	}
}

func TestUserCommandJSON(t *testing.T) {
	env := newCLIEnv(t, userHandler(t, "stored-token"))
	require.NoError(t, env.store.Set(&token.Credential{Profile: "default", AccessToken: "stored-token"}))

	out, err := env.run(t, "", "--output", "json", "user")
	require.NoError(t, err)

	var u graph.User
	require.NoError(t, json.Unmarshal([]byte(out), &u))
	assert.Equal(t, "123", u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, 4, u.MediaCount)
}

func TestUserCommandText(t *testing.T) {
	env := newCLIEnv(t, userHandler(t, "flag-token"))

	out, err := env.run(t, "", "--access-token", "flag-token", "user", "me")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
}

func TestUserCommandErrors(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		env := newCLIEnv(t, userHandler(t, "x"))
		_, err := env.run(t, "", "user")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no access token")
	})

	t.Run("rejected token", func(t *testing.T) {
		env := newCLIEnv(t, userHandler(t, "good"))
		_, err := env.run(t, "", "--access-token", "bad", "user")
		require.Error(t, err)
		assert.True(t, errs.IsType(err, errs.ErrorTypeAuth), "got %v", err)
	})

	t.Run("schema mismatch", func(t *testing.T) {
		env := newCLIEnv(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"123"}`))
		})
		_, err := env.run(t, "", "--access-token", "tok", "user")
		require.Error(t, err)
		assert.True(t, errs.IsType(err, errs.ErrorTypeSchema), "got %v", err)
	})

	t.Run("bad output format", func(t *testing.T) {
		env := newCLIEnv(t, userHandler(t, "tok"))
		_, err := env.run(t, "", "--access-token", "tok", "--output", "xml", "user")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid output format")
	})
}

func TestMediaListCommand(t *testing.T) {
	env := newCLIEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/media", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "c1", r.URL.Query().Get("after"))
		assert.Equal(t, "id,caption", r.URL.Query().Get("fields"))
		w.Write([]byte(`{"data":[{"id":"1","caption":"first"},{"id":"2"}],"paging":{"cursors":{"after":"c2"},"next":"https://next"}}`))
	})

	out, err := env.run(t, "", "--access-token", "tok", "-o", "yaml",
		"media", "list", "--limit", "2", "--after", "c1", "--fields", "id,caption")
	require.NoError(t, err)

	assert.Contains(t, out, `id: "1"`)
	assert.Contains(t, out, `id: "2"`)
	assert.Less(t, strings.Index(out, `id: "1"`), strings.Index(out, `id: "2"`))
	assert.Contains(t, out, "after: c2")
}

func TestMediaListPageSizeFlag(t *testing.T) {
	env := newCLIEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"data":[{"id":"1"}]}`))
	})

	_, err := env.run(t, "", "--access-token", "tok", "--page-size", "7", "-o", "json", "media", "list")
	require.NoError(t, err)

	_, err = env.run(t, "", "--access-token", "tok", "--page-size", "500", "media", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page size")
}

func TestMediaListRejectsBothCursors(t *testing.T) {
	env := newCLIEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := env.run(t, "", "--access-token", "tok", "media", "list", "--after", "a", "--before", "b")
	assert.Error(t, err)
}

func TestMediaGetCommand(t *testing.T) {
	env := newCLIEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/901", r.URL.Path)
		w.Write([]byte(`{"id":"901","media_type":"VIDEO","like_count":3}`))
	})

	out, err := env.run(t, "", "--access-token", "tok", "-o", "json", "media", "get", "901")
	require.NoError(t, err)

	var m graph.Media
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.True(t, m.IsVideo())
	assert.Equal(t, 3, m.LikeCount)
}

func TestTokenLifecycle(t *testing.T) {
	env := newCLIEnv(t, userHandler(t, "IGQVJlongtoken1234"))

	_, err := env.run(t, "IGQVJlongtoken1234\n", "token", "set", "--verify", "--profile", "work")
	require.NoError(t, err)

	cred, err := env.store.Get("work")
	require.NoError(t, err)
	assert.Equal(t, "IGQVJlongtoken1234", cred.AccessToken)
	assert.Equal(t, "123", cred.UserID)

	out, err := env.run(t, "", "--profile", "work", "-o", "json", "token", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "IGQV...1234")
	assert.NotContains(t, out, "IGQVJlongtoken1234")

	_, err = env.run(t, "", "--profile", "work", "token", "delete")
	require.NoError(t, err)
	assert.Equal(t, 0, env.store.Len())

	_, err = env.run(t, "", "--profile", "work", "token", "delete")
	assert.NoError(t, err, "deleting a missing token only warns")
}

func TestTokenSetRejectsEmptyInput(t *testing.T) {
	env := newCLIEnv(t, userHandler(t, "x"))

	_, err := env.run(t, "\n", "token", "set")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
	assert.Equal(t, 0, env.store.Len())
}

func TestConfigInitAndShow(t *testing.T) {
	env := newCLIEnv(t, userHandler(t, "x"))
	path := filepath.Join(t.TempDir(), "iggraph.yaml")

	_, err := env.run(t, "", "config", "init", path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = env.run(t, "", "config", "init", path)
	assert.Error(t, err, "init must not overwrite")

	out, err := env.run(t, "", "--config", path, "--access-token", "IGQVJsecretvalue99", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "IGQV...ue99")
	assert.Contains(t, out, "page_size: 25")
	assert.NotContains(t, out, "IGQVJsecretvalue99")
}

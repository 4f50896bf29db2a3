package testserver

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/kanbee/internal/app"
	"github.com/rpggio/kanbee/internal/domain/board"
	"github.com/rpggio/kanbee/internal/sqlite"
)

// TestServer is a full HTTP stack over an in-memory database.
type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	App    *app.App
}

// New starts a server with snapshot export disabled.
func New(t *testing.T) *TestServer {
	t.Helper()
	return NewWithSnapshots(t, nil)
}

// NewWithSnapshots starts a server exporting to snapshots.
func NewWithSnapshots(t *testing.T, snapshots board.SnapshotStore) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	a := app.New(db, snapshots, nil)
	server := httptest.NewServer(a.Handler())

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, App: a}
}

// URL returns the base URL joined with path.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

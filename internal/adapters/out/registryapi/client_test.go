package registryapi

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/registry"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/empty"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	"github.com/google/go-containerregistry/pkg/v1/random"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/types"
	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/registry-cli/internal/domain"
	"github.com/bnema/registry-cli/internal/logging"
)

type recordedRequest struct {
	Method string
	Path   string
	Accept string
}

type requestLog struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (l *requestLog) record(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Accept: r.Header.Get("Accept")})
}

func (l *requestLog) matching(method, pathPart string) []recordedRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []recordedRequest
	for _, r := range l.requests {
		if r.Method == method && strings.Contains(r.Path, pathPart) {
			out = append(out, r)
		}
	}
	return out
}

func newTestRegistry(t *testing.T) (*httptest.Server, *requestLog) {
	t.Helper()
	reqs := &requestLog{}
	handler := registry.New(registry.Logger(log.New(io.Discard, "", 0)))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqs.record(r)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, reqs
}

func testContext() context.Context {
	return logging.WithCtx(context.Background(), logging.Nop())
}

func hostOf(srv *httptest.Server) string {
	return strings.TrimPrefix(srv.URL, "http://")
}

func pushImage(t *testing.T, srv *httptest.Server, repository, tag string, img v1.Image) v1.Hash {
	t.Helper()
	ref, err := name.ParseReference(fmt.Sprintf("%s/%s:%s", hostOf(srv), repository, tag))
	require.NoError(t, err)
	require.NoError(t, remote.Write(ref, img))
	d, err := img.Digest()
	require.NoError(t, err)
	return d
}

func randomImage(t *testing.T, created time.Time) v1.Image {
	t.Helper()
	img, err := random.Image(128, 1)
	require.NoError(t, err)
	img, err = mutate.CreatedAt(img, v1.Time{Time: created})
	require.NoError(t, err)
	return img
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestClient_ListRepositories(t *testing.T) {
	srv, _ := newTestRegistry(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	pushImage(t, srv, "app", "v1", randomImage(t, created))
	pushImage(t, srv, "team/api", "v1", randomImage(t, created))

	repos, err := newTestClient(t, srv).ListRepositories(testContext())

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"app", "team/api"}, repos)
}

func TestClient_ListRepositories_NonSuccessIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v2/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	repos, err := newTestClient(t, srv).ListRepositories(testContext())

	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestClient_ListRepositories_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := newTestClient(t, srv)
	srv.Close()

	_, err := c.ListRepositories(testContext())

	require.Error(t, err)
}

func TestClient_ListTags(t *testing.T) {
	srv, _ := newTestRegistry(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	pushImage(t, srv, "app", "v1", randomImage(t, created))
	pushImage(t, srv, "app", "v2", randomImage(t, created))

	tags, err := newTestClient(t, srv).ListTags(testContext(), "app")

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"v1", "v2"}, tags)
}

func TestClient_ListTags_UnknownRepositoryIsEmpty(t *testing.T) {
	srv, _ := newTestRegistry(t)

	tags, err := newTestClient(t, srv).ListTags(testContext(), "missing")

	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestClient_ListTags_InvalidRepository(t *testing.T) {
	srv, _ := newTestRegistry(t)

	_, err := newTestClient(t, srv).ListTags(testContext(), "Not Valid")

	assert.ErrorIs(t, err, domain.ErrInvalidRepositoryName)
}

func TestClient_GetTagConfig(t *testing.T) {
	srv, _ := newTestRegistry(t)
	img := randomImage(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	pushImage(t, srv, "app", "v1", img)
	configName, err := img.ConfigName()
	require.NoError(t, err)

	desc, err := newTestClient(t, srv).GetTagConfig(testContext(), "app", "v1")

	require.NoError(t, err)
	assert.Equal(t, digest.Digest(configName.String()), desc.Digest)
	assert.Equal(t, string(types.DockerConfigJSON), desc.MediaType)
}

func TestClient_GetTagConfig_IndexHasNoConfig(t *testing.T) {
	srv, _ := newTestRegistry(t)
	idx, err := random.Index(128, 1, 1)
	require.NoError(t, err)
	ref, err := name.ParseReference(hostOf(srv) + "/app:multi")
	require.NoError(t, err)
	require.NoError(t, remote.WriteIndex(ref, idx))

	_, err = newTestClient(t, srv).GetTagConfig(testContext(), "app", "multi")

	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestClient_GetTagConfig_UnknownTag(t *testing.T) {
	srv, _ := newTestRegistry(t)
	pushImage(t, srv, "app", "v1", randomImage(t, time.Now()))

	_, err := newTestClient(t, srv).GetTagConfig(testContext(), "app", "nope")

	assert.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestClient_GetBlobCreated(t *testing.T) {
	srv, reqs := newTestRegistry(t)
	created := time.Date(2023, 7, 14, 9, 30, 0, 0, time.UTC)
	pushImage(t, srv, "app", "v1", randomImage(t, created))
	c := newTestClient(t, srv)

	desc, err := c.GetTagConfig(testContext(), "app", "v1")
	require.NoError(t, err)
	got, err := c.GetBlobCreated(testContext(), "app", desc)

	require.NoError(t, err)
	assert.True(t, created.Equal(got), "got %s", got)

	blobGets := reqs.matching(http.MethodGet, "/blobs/"+desc.Digest.String())
	require.NotEmpty(t, blobGets)
	assert.Equal(t, desc.MediaType, blobGets[len(blobGets)-1].Accept)
}

func TestClient_GetBlobCreated_MissingBlob(t *testing.T) {
	srv, _ := newTestRegistry(t)
	pushImage(t, srv, "app", "v1", randomImage(t, time.Now()))

	_, err := newTestClient(t, srv).GetBlobCreated(testContext(), "app", domain.ConfigDescriptor{
		MediaType: string(types.DockerConfigJSON),
		Digest:    digest.FromString("not there"),
	})

	assert.ErrorIs(t, err, domain.ErrBlobNotFound)
}

func TestClient_GetBlobCreated_NoCreatedField(t *testing.T) {
	srv, _ := newTestRegistry(t)
	pushImage(t, srv, "app", "bare", empty.Image)
	c := newTestClient(t, srv)

	desc, err := c.GetTagConfig(testContext(), "app", "bare")
	require.NoError(t, err)
	_, err = c.GetBlobCreated(testContext(), "app", desc)

	assert.ErrorIs(t, err, domain.ErrCreatedNotFound)
}

func TestClient_GetTagDigest_Head(t *testing.T) {
	srv, reqs := newTestRegistry(t)
	want := pushImage(t, srv, "app", "v1", randomImage(t, time.Now()))

	got, err := newTestClient(t, srv).GetTagDigest(testContext(), "app", "v1")

	require.NoError(t, err)
	assert.Equal(t, want.String(), got.String())
	assert.NotEmpty(t, reqs.matching(http.MethodHead, "/v2/app/manifests/v1"))
	assert.Empty(t, reqs.matching(http.MethodGet, "/v2/app/manifests/v1"))
}

func TestClient_GetTagDigest_Get(t *testing.T) {
	srv, reqs := newTestRegistry(t)
	want := pushImage(t, srv, "app", "v1", randomImage(t, time.Now()))

	got, err := newTestClient(t, srv, WithDigestMethod(DigestMethodGet)).GetTagDigest(testContext(), "app", "v1")

	require.NoError(t, err)
	assert.Equal(t, want.String(), got.String())
	assert.NotEmpty(t, reqs.matching(http.MethodGet, "/v2/app/manifests/v1"))
}

func TestClient_GetTagDigest_UnknownTag(t *testing.T) {
	srv, _ := newTestRegistry(t)
	pushImage(t, srv, "app", "v1", randomImage(t, time.Now()))

	_, err := newTestClient(t, srv).GetTagDigest(testContext(), "app", "gone")

	assert.ErrorIs(t, err, domain.ErrDigestNotFound)
}

func TestClient_DeleteManifest(t *testing.T) {
	srv, reqs := newTestRegistry(t)
	d := pushImage(t, srv, "app", "v1", randomImage(t, time.Now()))
	c := newTestClient(t, srv)
	dgst := digest.Digest(d.String())

	require.NoError(t, c.DeleteManifest(testContext(), "app", dgst))
	assert.Len(t, reqs.matching(http.MethodDelete, "/v2/app/manifests/"+d.String()), 1)

	err := c.DeleteManifest(testContext(), "app", dgst)
	assert.ErrorIs(t, err, domain.ErrDeleteRejected)
}

func TestClient_DeleteManifest_InvalidDigest(t *testing.T) {
	srv, reqs := newTestRegistry(t)

	err := newTestClient(t, srv).DeleteManifest(testContext(), "app", digest.Digest("sha256:zz"))

	assert.ErrorIs(t, err, domain.ErrDigestNotFound)
	assert.Empty(t, reqs.matching(http.MethodDelete, "/manifests/"))
}

func TestClient_BasicAuth(t *testing.T) {
	handler := registry.New(registry.Logger(log.New(io.Discard, "", 0)))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ci" || pass != "s3cret" {
			w.Header().Set("WWW-Authenticate", `Basic realm="test"`)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	}))
	defer srv.Close()

	auth, err := ParseLogin("ci:s3cret")
	require.NoError(t, err)
	img := randomImage(t, time.Now())
	ref, err := name.ParseReference(hostOf(srv) + "/app:v1")
	require.NoError(t, err)
	require.NoError(t, remote.Write(ref, img, remote.WithAuth(auth)))

	anonymous, err := newTestClient(t, srv).ListTags(testContext(), "app")
	require.NoError(t, err)
	assert.Empty(t, anonymous)

	tags, err := newTestClient(t, srv, WithAuth(auth)).ListTags(testContext(), "app")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, tags)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, WithTimeout(50*time.Millisecond)).ListRepositories(testContext())

	require.Error(t, err)
}

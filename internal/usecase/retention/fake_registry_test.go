package retention

import (
	"context"
	"errors"
	"time"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/bnema/registry-cli/internal/domain"
	"github.com/bnema/registry-cli/internal/logging"
)

var errTransport = errors.New("dial tcp: connection refused")

func testContext() context.Context {
	return logging.WithCtx(context.Background(), logging.Nop())
}

func tagKey(repository, tag string) string {
	return repository + ":" + tag
}

// fakeRegistry is an in-memory RegistryClient recording every mutating call.
type fakeRegistry struct {
	repositories  []string
	listReposErr  error
	tags          map[string][]string
	listTagsErr   map[string]error
	created       map[string]time.Time
	missingBlob   map[string]bool
	digests       map[string]digest.Digest
	digestErr     map[string]error
	deleteErr     map[digest.Digest]error
	blobsByConfig map[digest.Digest]string

	listReposCalls int
	configCalls    map[string]int
	digestCalls    []string
	deleted        []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		tags:          map[string][]string{},
		listTagsErr:   map[string]error{},
		created:       map[string]time.Time{},
		missingBlob:   map[string]bool{},
		digests:       map[string]digest.Digest{},
		digestErr:     map[string]error{},
		deleteErr:     map[digest.Digest]error{},
		blobsByConfig: map[digest.Digest]string{},
		configCalls:   map[string]int{},
	}
}

// addTag registers a tag with a creation time and a digest derived from content.
func (f *fakeRegistry) addTag(repository, tag string, created time.Time, content string) {
	if _, ok := f.tags[repository]; !ok {
		f.repositories = append(f.repositories, repository)
	}
	f.tags[repository] = append(f.tags[repository], tag)
	f.created[tagKey(repository, tag)] = created
	f.digests[tagKey(repository, tag)] = digest.FromString(content)
}

func (f *fakeRegistry) ListRepositories(_ context.Context) ([]string, error) {
	f.listReposCalls++
	if f.listReposErr != nil {
		return nil, f.listReposErr
	}
	return f.repositories, nil
}

func (f *fakeRegistry) ListTags(_ context.Context, repository string) ([]string, error) {
	if err := f.listTagsErr[repository]; err != nil {
		return nil, err
	}
	return f.tags[repository], nil
}

func (f *fakeRegistry) GetTagConfig(_ context.Context, repository, tag string) (domain.ConfigDescriptor, error) {
	key := tagKey(repository, tag)
	f.configCalls[key]++
	if _, ok := f.created[key]; !ok {
		return domain.ConfigDescriptor{}, domain.ErrConfigNotFound
	}
	d := digest.FromString("config:" + key)
	f.blobsByConfig[d] = key
	return domain.ConfigDescriptor{MediaType: ocispec.MediaTypeImageConfig, Digest: d}, nil
}

func (f *fakeRegistry) GetBlobCreated(_ context.Context, _ string, config domain.ConfigDescriptor) (time.Time, error) {
	key, ok := f.blobsByConfig[config.Digest]
	if !ok || f.missingBlob[key] {
		return time.Time{}, domain.ErrBlobNotFound
	}
	return f.created[key], nil
}

func (f *fakeRegistry) GetTagDigest(_ context.Context, repository, tag string) (digest.Digest, error) {
	key := tagKey(repository, tag)
	f.digestCalls = append(f.digestCalls, key)
	if err := f.digestErr[key]; err != nil {
		return "", err
	}
	d, ok := f.digests[key]
	if !ok {
		return "", domain.ErrManifestNotFound
	}
	return d, nil
}

func (f *fakeRegistry) DeleteManifest(_ context.Context, repository string, dgst digest.Digest) error {
	if err := f.deleteErr[dgst]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, repository+"@"+dgst.String())
	return nil
}

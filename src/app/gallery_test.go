package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"galleryserv/src/model"
)

// fakeStore is an in-memory model.MediaStore with per-key fetch delays, used
// to exercise out-of-order completion of the placeholder fan-out.
type fakeStore struct {
	mu       sync.Mutex
	listing  []model.ObjectInfo
	listErr  error
	objects  map[string][]byte
	fetchErr map[string]error
	delays   map[string]time.Duration
	fetches  int
}

func (f *fakeStore) UploadStream(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeStore) ListFolder(ctx context.Context, folder string, max int) ([]model.ObjectInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listing, nil
}

func (f *fakeStore) FetchObject(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	f.fetches++
	delay := f.delays[key]
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	if err, ok := f.fetchErr[key]; ok {
		return nil, err
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such key %s", key)
	}
	return data, nil
}

func (f *fakeStore) ObjectURL(ctx context.Context, key string) (string, error) {
	return "https://store.local/gallery/" + key, nil
}

func (f *fakeStore) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func TestAssembleOrderPreserved(t *testing.T) {
	// Listing already key-descending; delays force the fetches to finish in
	// the opposite order. Each key carries a distinct intrinsic width so a
	// placeholder attached to the wrong record is detectable.
	store := &fakeStore{
		listing: []model.ObjectInfo{
			{Key: "photos/c.jpg"},
			{Key: "photos/b.jpg"},
			{Key: "photos/a.jpg"},
		},
		objects: map[string][]byte{
			"photos/c.jpg": jpegImage(t, 30, 20),
			"photos/b.jpg": jpegImage(t, 40, 20),
			"photos/a.jpg": jpegImage(t, 50, 20),
		},
		delays: map[string]time.Duration{
			"photos/c.jpg": 40 * time.Millisecond,
			"photos/b.jpg": 20 * time.Millisecond,
		},
	}

	gallery := NewGallery(store, "photos", 400, 8)
	records, err := gallery.Assemble(context.Background())
	assert.NoError(t, err)
	if !assert.Len(t, records, 3) {
		return
	}

	wantPublicIDs := []string{"photos/c", "photos/b", "photos/a"}
	wantWidths := []int{30, 40, 50}
	for i, record := range records {
		assert.Equal(t, i, record.ID)
		assert.Equal(t, wantPublicIDs[i], record.PublicID)
		assert.Equal(t, "jpg", record.Format)
		assert.Equal(t, wantWidths[i], record.Width)
		assert.Equal(t, 20, record.Height)
		assert.True(t, strings.HasPrefix(record.BlurDataURL, "data:image/jpeg;base64,"))
		assert.Contains(t, record.URL, record.PublicID)
	}
}

func TestAssembleIdempotent(t *testing.T) {
	store := &fakeStore{
		listing: []model.ObjectInfo{
			{Key: "photos/b.jpg"},
			{Key: "photos/a.jpg"},
		},
		objects: map[string][]byte{
			"photos/b.jpg": jpegImage(t, 20, 20),
			"photos/a.jpg": jpegImage(t, 20, 20),
		},
	}

	gallery := NewGallery(store, "photos", 400, 8)
	first, err := gallery.Assemble(context.Background())
	assert.NoError(t, err)
	second, err := gallery.Assemble(context.Background())
	assert.NoError(t, err)

	if assert.Equal(t, len(first), len(second)) {
		for i := range first {
			assert.Equal(t, first[i].ID, second[i].ID)
			assert.Equal(t, first[i].PublicID, second[i].PublicID)
		}
	}
}

func TestAssembleListError(t *testing.T) {
	store := &fakeStore{listErr: errors.New("listing down")}
	gallery := NewGallery(store, "photos", 400, 8)

	_, err := gallery.Assemble(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, store.fetchCount())
}

func TestAssembleFetchErrorFailsWholePass(t *testing.T) {
	store := &fakeStore{
		listing: []model.ObjectInfo{
			{Key: "photos/c.jpg"},
			{Key: "photos/b.jpg"},
			{Key: "photos/a.jpg"},
		},
		objects: map[string][]byte{
			"photos/c.jpg": jpegImage(t, 20, 20),
			"photos/a.jpg": jpegImage(t, 20, 20),
		},
		fetchErr: map[string]error{
			"photos/b.jpg": errors.New("rendition unavailable"),
		},
	}

	gallery := NewGallery(store, "photos", 400, 8)
	_, err := gallery.Assemble(context.Background())
	assert.Error(t, err)
	// The join barrier lets every branch settle before the pass fails.
	assert.Equal(t, 3, store.fetchCount())
}

func TestAssembleEmptyFolder(t *testing.T) {
	store := &fakeStore{}
	gallery := NewGallery(store, "photos", 400, 8)

	records, err := gallery.Assemble(context.Background())
	assert.NoError(t, err)
	assert.Len(t, records, 0)
	assert.Equal(t, 0, store.fetchCount())
}

func TestSplitKey(t *testing.T) {
	cases := []struct {
		key, publicID, format string
	}{
		{"photos/pic.jpg", "photos/pic", "jpg"},
		{"photos/pic.blur.png", "photos/pic.blur", "png"},
		{"photos/noext", "photos/noext", ""},
		{"photos.dir/noext", "photos.dir/noext", ""},
	}
	for _, tc := range cases {
		publicID, format := splitKey(tc.key)
		assert.Equal(t, tc.publicID, publicID, tc.key)
		assert.Equal(t, tc.format, format, tc.key)
	}
}

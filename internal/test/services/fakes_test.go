package services_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"findit-backend/internal/models"
	"findit-backend/internal/push"
	"findit-backend/internal/vision"
)

type fakeLabeler struct {
	labels []vision.Label
	err    error
	calls  int
}

func (f *fakeLabeler) AnnotateLabels(ctx context.Context, img []byte) ([]vision.Label, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.labels, nil
}

type fakeGeocoder struct {
	address string
	err     error
	calls   int
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.address, nil
}

type fakePrefs struct {
	mu     sync.Mutex
	values map[string]bool
	shown  map[string]bool
	getErr error
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{
		values: make(map[string]bool),
		shown:  make(map[string]bool),
	}
}

func (f *fakePrefs) GetPreference(email, key string, defaultValue bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return defaultValue, f.getErr
	}
	if v, ok := f.values[email+"|"+key]; ok {
		return v, nil
	}
	return defaultValue, nil
}

func (f *fakePrefs) SetPreference(email, key string, value bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[email+"|"+key] = value
	return nil
}

func (f *fakePrefs) MarkAdvisoryShown(email, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := email + "|" + key
	if f.shown[gate] {
		return false, nil
	}
	f.shown[gate] = true
	return true, nil
}

type fakePusher struct {
	mu     sync.Mutex
	sent   []push.Notification
	err    error
	events *[]string
}

func (f *fakePusher) Send(ctx context.Context, n push.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	if f.events != nil {
		*f.events = append(*f.events, "notify")
	}
	return nil
}

type putCall struct {
	Owner    string
	Name     string
	Location string
}

type fakeObjectStore struct {
	mu     sync.Mutex
	puts   []putCall
	err    error
	events *[]string
}

func (f *fakeObjectStore) Put(ctx context.Context, owner, name, location string, img []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.puts = append(f.puts, putCall{Owner: owner, Name: name, Location: location})
	if f.events != nil {
		*f.events = append(*f.events, "upload")
	}
	return fmt.Sprintf("images/%s/%s_1.jpg", owner, name), nil
}

type blockingProvider struct{}

func (blockingProvider) Sample(ctx context.Context) (models.Coordinates, error) {
	<-ctx.Done()
	return models.Coordinates{}, ctx.Err()
}

type countingProvider struct {
	fix   models.Coordinates
	calls int
}

func (p *countingProvider) Sample(ctx context.Context) (models.Coordinates, error) {
	p.calls++
	return p.fix, nil
}

func testImageBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

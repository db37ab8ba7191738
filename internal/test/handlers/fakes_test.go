package handlers_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"findit-backend/internal/middleware"
	"findit-backend/internal/models"
	"findit-backend/internal/vision"
)

// authenticatedAs injects the identity the auth middleware would have set,
// letting handler tests run without minting tokens.
func authenticatedAs(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "user-123")
		c.Set(middleware.UserEmailKey, email)
		c.Next()
	}
}

type fakePrefStore struct {
	values map[string]bool
	getErr error
	setErr error
}

func newFakePrefStore() *fakePrefStore {
	return &fakePrefStore{values: make(map[string]bool)}
}

func (f *fakePrefStore) GetPreference(email, key string, defaultValue bool) (bool, error) {
	if f.getErr != nil {
		return defaultValue, f.getErr
	}
	if v, ok := f.values[email+"|"+key]; ok {
		return v, nil
	}
	return defaultValue, nil
}

func (f *fakePrefStore) SetPreference(email, key string, value bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[email+"|"+key] = value
	return nil
}

func (f *fakePrefStore) MarkAdvisoryShown(email, key string) (bool, error) {
	gate := email + "|" + key + "|shown"
	if f.values[gate] {
		return false, nil
	}
	f.values[gate] = true
	return true, nil
}

type fakeProfileStore struct {
	profiles map[string]*models.UserProfile
	getErr   error
	saveErr  error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*models.UserProfile)}
}

func (f *fakeProfileStore) GetProfile(email string) (*models.UserProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.profiles[email]; ok {
		return p, nil
	}
	return &models.UserProfile{Email: email}, nil
}

func (f *fakeProfileStore) UpsertProfile(profile *models.UserProfile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.profiles[profile.Email] = profile
	return nil
}

type fakePictureStore struct {
	uploads map[string][]byte
	err     error
}

func newFakePictureStore() *fakePictureStore {
	return &fakePictureStore{uploads: make(map[string][]byte)}
}

func (f *fakePictureStore) UploadProfilePicture(owner string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := "profiles/" + owner + "/profile_picture"
	f.uploads[path] = data
	return path, nil
}

func (f *fakePictureStore) GetPublicURL(storagePath string) string {
	return "https://cdn.example.com/" + storagePath
}

type fakeLabeler struct {
	labels []vision.Label
}

func (f *fakeLabeler) AnnotateLabels(ctx context.Context, img []byte) ([]vision.Label, error) {
	return f.labels, nil
}

type fakeObjectStore struct {
	puts int
}

func (f *fakeObjectStore) Put(ctx context.Context, owner, name, location string, img []byte) (string, error) {
	f.puts++
	return "images/" + owner + "/" + name + "_1.jpg", nil
}

func testImageBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

// multipartImage builds a multipart body carrying the file under the given
// field plus any extra form values.
func multipartImage(t *testing.T, field string, data []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "capture.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	for k, v := range extra {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func perform(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

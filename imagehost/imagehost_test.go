package imagehost

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/JuzzThyne/ERI-backend/catalog"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var stemPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func TestUniqueStem(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":          "photo-",
		"my holiday pic.png": "my-holiday-pic-",
		`C:\tmp\shot.jpeg`:   "shot-",
		"../../etc/passwd":   "passwd-",
		"???.gif":            "image-",
	}
	for in, prefix := range cases {
		got := uniqueStem(in)
		if !strings.HasPrefix(got, prefix) || !stemPattern.MatchString(got) {
			t.Fatalf("uniqueStem(%q) = %q, want prefix %q", in, got, prefix)
		}
	}
	if uniqueStem("a.jpg") == uniqueStem("a.jpg") {
		t.Fatalf("stems for the same filename must differ")
	}
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"a.JPG":     ".jpg",
		"a.png":     ".png",
		"noext":     "",
		"a.p/ng":    "",
		"a.tar.gz":  ".gz",
		"weird.j$g": "",
	}
	for in, want := range cases {
		if got := extension(in); got != want {
			t.Fatalf("extension(%q) = %q, want %q", in, got, want)
		}
	}
}

type fakeAPI struct {
	params uploader.UploadParams
	res    *uploader.UploadResult
	err    error
}

func (f *fakeAPI) Upload(_ context.Context, _ interface{}, p uploader.UploadParams) (*uploader.UploadResult, error) {
	f.params = p
	return f.res, f.err
}

func TestCloudinaryUploadReturnsSecureURL(t *testing.T) {
	fake := &fakeAPI{res: &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/x/a.jpg"}}
	c := &Cloudinary{api: fake, folder: "eri-items"}

	url, err := c.Upload(context.Background(), catalog.ImageFile{Filename: "a.jpg", Body: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://res.cloudinary.com/x/a.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
	if fake.params.Folder != "eri-items" || fake.params.Overwrite == nil || *fake.params.Overwrite {
		t.Fatalf("unexpected params %+v", fake.params)
	}
	if !strings.HasPrefix(fake.params.PublicID, "a-") {
		t.Fatalf("unexpected public id %q", fake.params.PublicID)
	}
}

func TestCloudinaryClassifiesErrors(t *testing.T) {
	cases := []struct {
		name string
		api  *fakeAPI
		want error
	}{
		{"remote exists", &fakeAPI{res: &uploader.UploadResult{Error: api.ErrorResp{Message: "Resource already exists"}}}, catalog.ErrUploadConflict},
		{"remote other", &fakeAPI{res: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}}, catalog.ErrUploadFailed},
		{"transport", &fakeAPI{err: errors.New("connection reset")}, catalog.ErrUploadFailed},
		{"no url", &fakeAPI{res: &uploader.UploadResult{}}, catalog.ErrUploadFailed},
		{"nil result", &fakeAPI{}, catalog.ErrUploadFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Cloudinary{api: tc.api}
			_, err := c.Upload(context.Background(), catalog.ImageFile{Filename: "a.jpg", Body: strings.NewReader("x")})
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLocalUploadWritesFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://localhost:8080/uploads")
	if err != nil {
		t.Fatalf("new local: %v", err)
	}
	url, err := l.Upload(context.Background(), catalog.ImageFile{Filename: "pic.PNG", Body: strings.NewReader("png-bytes")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	name := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	if name == url || !strings.HasSuffix(name, ".png") {
		t.Fatalf("unexpected url %q", url)
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil || string(data) != "png-bytes" {
		t.Fatalf("stored file: %q %v", data, err)
	}
}

func TestLocalUploadConflict(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://h/uploads")
	if err != nil {
		t.Fatalf("new local: %v", err)
	}
	l.name = func(string) string { return "fixed.jpg" }

	if _, err := l.Upload(context.Background(), catalog.ImageFile{Filename: "a.jpg", Body: strings.NewReader("1")}); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	_, err = l.Upload(context.Background(), catalog.ImageFile{Filename: "a.jpg", Body: strings.NewReader("2")})
	if !errors.Is(err, catalog.ErrUploadConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "fixed.jpg"))
	if string(data) != "1" {
		t.Fatalf("existing file was overwritten: %q", data)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocalUploadRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://h/uploads")
	if err != nil {
		t.Fatalf("new local: %v", err)
	}
	l.name = func(string) string { return "partial.jpg" }

	_, err = l.Upload(context.Background(), catalog.ImageFile{Filename: "a.jpg", Body: failingReader{}})
	if !errors.Is(err, catalog.ErrUploadFailed) {
		t.Fatalf("expected failure, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "partial.jpg")); !os.IsNotExist(err) {
		t.Fatalf("partial file left behind: %v", err)
	}
}

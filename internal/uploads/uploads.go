// Package uploads stores user-supplied files on local disk and builds their
// public URLs.
package uploads

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"evalgo.org/cookbook/internal/config"
)

var (
	// ErrEmptyName is returned when a file name sanitizes to nothing.
	ErrEmptyName = errors.New("invalid file name")
	// ErrTooLarge is returned when a file exceeds the configured maximum size.
	ErrTooLarge = errors.New("file too large")
	// ErrBadImage is returned when an image payload cannot be decoded.
	ErrBadImage = errors.New("invalid image data")
)

// PublicPrefix is the URL path uploads are served under.
const PublicPrefix = "/uploads/"

var (
	unsafeChars     = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	dataURLPattern  = regexp.MustCompile(`^data:image/([A-Za-z0-9.+-]+);base64,(.*)$`)
	windowsDevNames = map[string]bool{
		"CON": true, "PRN": true, "AUX": true, "NUL": true,
		"COM1": true, "COM2": true, "COM3": true, "COM4": true,
		"LPT1": true, "LPT2": true, "LPT3": true,
	}

	// reserveDevNames guards device names only where the OS reserves them.
	reserveDevNames = runtime.GOOS == "windows"

	// rasterExts are served inline and accepted as chat images. Anything
	// else is downloaded as an attachment.
	rasterExts = map[string]bool{
		"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true, "bmp": true,
	}
)

// SecureFilename reduces name to a safe basename: accented letters are
// folded to ASCII, path separators become spaces, whitespace runs become a
// single underscore, anything outside [A-Za-z0-9_.-] is dropped and
// leading/trailing dots and underscores are trimmed. It returns "" when
// nothing usable remains.
func SecureFilename(name string) string {
	name = asciiFold(name)
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name != "" && reserveDevNames {
		stem := strings.ToUpper(strings.SplitN(name, ".", 2)[0])
		if windowsDevNames[stem] {
			name = "_" + name
		}
	}
	return name
}

// asciiFold decomposes name (NFKD) and keeps only the ASCII runes, so
// "café" becomes "cafe" and "ﬁle" becomes "file".
func asciiFold(name string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, norm.NFKD.String(name))
}

// Inline reports whether a stored file is a raster image that is safe to
// render in the browser.
func Inline(filename string) bool {
	return rasterExts[strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))]
}

// Saved describes a stored file.
type Saved struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

// Store writes uploads below a directory.
type Store struct {
	dir     string
	baseURL string
	maxSize int64
}

// NewStore creates the upload directory if needed.
func NewStore(cfg config.UploadsConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("uploads dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &Store{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		maxSize: cfg.MaxSize,
	}, nil
}

// Dir returns the upload directory.
func (s *Store) Dir() string {
	return s.dir
}

// MaxSize returns the upload size limit in bytes; zero means unlimited.
func (s *Store) MaxSize() int64 {
	return s.maxSize
}

// URL returns the public URL of a stored file.
func (s *Store) URL(filename string) string {
	return s.baseURL + PublicPrefix + url.PathEscape(filename)
}

// Path resolves a public file name to its location on disk. The name is
// sanitized first so it can never escape the upload directory.
func (s *Store) Path(filename string) (string, error) {
	safe := SecureFilename(filename)
	if safe == "" || safe != filename {
		return "", ErrEmptyName
	}
	return filepath.Join(s.dir, safe), nil
}

// Remove deletes a stored file by its public name.
func (s *Store) Remove(filename string) error {
	path, err := s.Path(filename)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// SaveMultipart stores an uploaded form file under its sanitized name. An
// existing file with the same name is not overwritten; a short random
// suffix is added instead.
func (s *Store) SaveMultipart(fh *multipart.FileHeader) (*Saved, error) {
	if s.maxSize > 0 && fh.Size > s.maxSize {
		return nil, ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	return s.Save(fh.Filename, src)
}

// Save copies r into a new file named after name.
func (s *Store) Save(name string, r io.Reader) (*Saved, error) {
	safe := SecureFilename(name)
	if safe == "" {
		return nil, ErrEmptyName
	}

	f, final, err := s.create(safe)
	if err != nil {
		return nil, err
	}

	reader := r
	if s.maxSize > 0 {
		reader = io.LimitReader(r, s.maxSize+1)
	}
	n, err := io.Copy(f, reader)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.maxSize > 0 && n > s.maxSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, final))
		if errors.Is(err, ErrTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	return &Saved{Filename: final, URL: s.URL(final), Size: n}, nil
}

// create opens a new file exclusively, picking another name on collision.
func (s *Store) create(name string) (*os.File, string, error) {
	candidate := name
	for attempt := 0; attempt < 5; attempt++ {
		f, err := os.OpenFile(filepath.Join(s.dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("failed to create upload: %w", err)
		}
		ext := filepath.Ext(name)
		candidate = strings.TrimSuffix(name, ext) + "_" + uuid.NewString()[:8] + ext
	}
	return nil, "", fmt.Errorf("failed to create upload: too many name collisions for %s", name)
}

// DecodeImage parses a data URL ("data:image/png;base64,...") or bare
// base64 and returns the bytes and the file extension. Bare base64 is
// assumed to be PNG. Only raster types are accepted.
func DecodeImage(payload string) ([]byte, string, error) {
	ext := "png"
	encoded := strings.TrimSpace(payload)
	if m := dataURLPattern.FindStringSubmatch(encoded); m != nil {
		ext = strings.ToLower(m[1])
		encoded = m[2]
	} else if strings.HasPrefix(encoded, "data:") {
		return nil, "", fmt.Errorf("%w: unsupported data url", ErrBadImage)
	}

	if ext == "jpeg" {
		ext = "jpg"
	}
	if !rasterExts[ext] {
		return nil, "", fmt.Errorf("%w: unsupported image type %s", ErrBadImage, ext)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty image", ErrBadImage)
	}
	return data, ext, nil
}

// SaveImage decodes an image payload and stores it as image_<uuid>.<ext>.
func (s *Store) SaveImage(payload string) (*Saved, error) {
	data, ext, err := DecodeImage(payload)
	if err != nil {
		return nil, err
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, ErrTooLarge
	}

	name := fmt.Sprintf("image_%s.%s", uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write image: %w", err)
	}
	return &Saved{Filename: name, URL: s.URL(name), Size: int64(len(data))}, nil
}

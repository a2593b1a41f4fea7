package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cobrasuicida/srf2025-scraper/ocr"
)

// DirSource reads a directory of per-page files, one file per page in
// lexical filename order. Text files are decoded like TextSource pages;
// image files are recognized through OCR when built with -tags ocr.
type DirSource struct {
	name  string
	files []string
	cache map[int][]string
	ocr   *ocr.Client
}

// pageExtensions lists the file extensions served as pages.
var pageExtensions = map[string]bool{
	".txt": true, ".text": true, ".asc": true,
	".png": true, ".jpg": true, ".jpeg": true,
	".tif": true, ".tiff": true, ".bmp": true, ".webp": true,
}

// imageExtensions lists the extensions routed through OCR.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".tif": true, ".tiff": true, ".bmp": true, ".webp": true,
}

// OpenDir opens a directory of per-page files.
func OpenDir(path string) (*DirSource, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if pageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, ErrNoPages
	}
	sort.Strings(files)

	return &DirSource{
		name:  filepath.Base(path),
		files: files,
		cache: make(map[int][]string),
	}, nil
}

// PageCount returns the number of page files.
func (s *DirSource) PageCount() int {
	return len(s.files)
}

// Lines returns the lines of the given page (1-based), running image pages
// through OCR. Results are cached per page.
func (s *DirSource) Lines(page int) ([]string, error) {
	if page < 1 || page > len(s.files) {
		return nil, fmt.Errorf("page %d out of range [1, %d]", page, len(s.files))
	}
	if lines, ok := s.cache[page]; ok {
		return lines, nil
	}

	path := s.files[page-1]
	var text string
	if imageExtensions[strings.ToLower(filepath.Ext(path))] {
		recognized, err := s.recognize(path)
		if err != nil {
			return nil, fmt.Errorf("page %d (%s): %w", page, filepath.Base(path), err)
		}
		text = recognized
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		decoded, err := decodeText(data)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		text = decoded
	}

	lines := splitLines(text)
	s.cache[page] = lines
	return lines, nil
}

// recognize runs OCR on an image page, creating the client on first use.
func (s *DirSource) recognize(path string) (string, error) {
	if s.ocr == nil {
		client, err := ocr.New()
		if err != nil {
			return "", err
		}
		s.ocr = client
	}
	return s.ocr.RecognizeFile(path)
}

// Name returns the directory name.
func (s *DirSource) Name() string {
	return s.name
}

// Close releases the OCR client if one was created.
func (s *DirSource) Close() error {
	if s.ocr != nil {
		err := s.ocr.Close()
		s.ocr = nil
		return err
	}
	return nil
}

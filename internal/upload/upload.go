// Package upload decides which photo uploads are stored and where.
package upload

import (
	"bufio"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxUploadBytes is the largest request body accepted by the report form.
const MaxUploadBytes = 16 << 20

// AllowedExtensions lists the accepted file extensions (lowercase, no dot).
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// AllowedFile reports whether filename has an accepted extension.
func AllowedFile(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return AllowedExtensions[strings.ToLower(filename[i+1:])]
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces a client-supplied name to a safe base name made of
// ASCII letters, digits, '_', '.' and '-'. Accented letters lose their
// accents ("café" becomes "cafe"); other non-ASCII runes are dropped. It
// never returns an empty string.
func SecureFilename(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		filename = filename[i+1:]
	}
	filename = transliterate(filename)
	filename = strings.Join(strings.Fields(filename), "_")
	filename = unsafeChars.ReplaceAllString(filename, "")
	filename = strings.Trim(filename, "._")
	if filename == "" {
		return "file"
	}
	return filename
}

// transliterate decomposes s (NFKD) and strips the combining marks.
func transliterate(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// BlobPath is the object path for an upload received at t.
func BlobPath(t time.Time, filename string) string {
	return "items/" + t.Format("20060102_150405") + "_" + SecureFilename(filename)
}

const sniffLen = 512

// Sniff returns declared when set, otherwise the type detected from the first
// bytes of r. The returned reader still yields all of r.
func Sniff(declared string, r io.Reader) (string, io.Reader, error) {
	if declared != "" {
		return declared, r, nil
	}

	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	return http.DetectContentType(head), br, nil
}

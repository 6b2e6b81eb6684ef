package testutil

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"
)

const fakeStorageBase = "https://cdn.test/media/"

// pngHeader is the smallest prefix that content sniffing accepts as PNG.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

// PNGDataURI returns an inline image payload that decodes to a PNG.
func PNGDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)
}

// FakeStorage is an in-memory object store with the same key and link
// scheme as the S3 client.
type FakeStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Deleted []string
	FailOn  error
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{Objects: map[string][]byte{}}
}

func (s *FakeStorage) UploadFile(_ context.Context, filename string, body []byte, _ string, folder string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailOn != nil {
		return "", s.FailOn
	}
	key := filename
	if folder != "" {
		key = folder + "/" + filename
	}
	s.Objects[key] = body
	return key, nil
}

func (s *FakeStorage) DeleteFile(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.Objects, objectKey)
	s.Deleted = append(s.Deleted, objectKey)
	return nil
}

func (s *FakeStorage) GetPublicLinkKey(objectKey string) string {
	return fakeStorageBase + objectKey
}

func (s *FakeStorage) GetObjectKeyFromLink(link string) (string, bool) {
	if !strings.HasPrefix(link, fakeStorageBase) {
		return "", false
	}
	return strings.TrimPrefix(link, fakeStorageBase), true
}

func (s *FakeStorage) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Objects)
}

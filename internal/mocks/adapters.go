package mocks

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
)

// Publisher records published jobs.
type Publisher struct {
	mu   sync.Mutex
	Jobs []any
	Err  error
}

func (p *Publisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Jobs = append(p.Jobs, body)
	return nil
}

// FileStore keeps saved files in memory.
type FileStore struct {
	mu    sync.Mutex
	Files map[string][]byte
	Err   error
}

func NewFileStore() *FileStore { return &FileStore{Files: map[string][]byte{}} }

func (s *FileStore) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files[name] = buf.Bytes()
	return "/uploads/" + name, nil
}

func (s *FileStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Files)
}

// OfferIndex is a naive search index matching on title substrings.
type OfferIndex struct {
	mu    sync.Mutex
	Docs  map[primitive.ObjectID]entity.Offer
	Err   error
	Extra []primitive.ObjectID // ids returned by SearchOffers in addition to matches
}

func NewOfferIndex() *OfferIndex {
	return &OfferIndex{Docs: map[primitive.ObjectID]entity.Offer{}}
}

func (ix *OfferIndex) IndexOffer(_ context.Context, o *entity.Offer) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.Err != nil {
		return ix.Err
	}
	ix.Docs[o.ID] = *o
	return nil
}

func (ix *OfferIndex) DeleteOffer(_ context.Context, id primitive.ObjectID) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.Err != nil {
		return ix.Err
	}
	delete(ix.Docs, id)
	return nil
}

func (ix *OfferIndex) SearchOffers(_ context.Context, q string, size int) ([]primitive.ObjectID, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.Err != nil {
		return nil, ix.Err
	}
	out := append([]primitive.ObjectID{}, ix.Extra...)
	for id, o := range ix.Docs {
		if strings.Contains(strings.ToLower(o.Title), strings.ToLower(q)) {
			out = append(out, id)
		}
	}
	if len(out) > size {
		out = out[:size]
	}
	return out, nil
}

package cmd

import (
	"context"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/capture"
	"github.com/mwantia/snapshot/log"
	"github.com/mwantia/snapshot/store"
)

// Service implements API on top of a capturer and a storage backend.
type Service struct {
	capturer *capture.Capturer
	backend  store.Backend
	log      *log.Logger
}

func NewService(capturer *capture.Capturer, backend store.Backend, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.NewNop()
	}

	return &Service{
		capturer: capturer,
		backend:  backend,
		log:      logger.Named("service"),
	}
}

func (s *Service) Capture(ctx context.Context, path string) (*store.Record, error) {
	root, err := s.capturer.Capture(ctx, path)
	if err != nil {
		return nil, err
	}

	record, err := s.backend.Put(ctx, root)
	if err != nil {
		return nil, err
	}

	s.log.Info("Stored '%s' as %s in %s backend", record.RootPath, record.ID, s.backend.Name())
	return record, nil
}

func (s *Service) Get(ctx context.Context, id string) (*store.Record, error) {
	return s.backend.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*store.Record, error) {
	return s.backend.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Deleted record %s", id)
	return nil
}

func (s *Service) Lookup(ctx context.Context, id string, path string) (snapshot.Node, error) {
	return s.backend.Lookup(ctx, id, path)
}

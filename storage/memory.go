package storage

import (
	"github.com/deeplook/vbbvg/model"
)

// In memory implementation of Storage

type MemoryStorage struct {
	Stops []model.Stop
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		Stops: []model.Stop{},
	}
}

func (s *MemoryStorage) WriteStop(stop model.Stop) error {
	s.Stops = append(s.Stops, stop)
	return nil
}

func (s *MemoryStorage) ListStops(filter ListStopsFilter) ([]model.Stop, error) {
	stops := []model.Stop{}
	for _, stop := range s.Stops {
		if filter.matches(stop) {
			stops = append(stops, stop)
		}
	}
	return stops, nil
}

func (s *MemoryStorage) Close() error {
	return nil
}

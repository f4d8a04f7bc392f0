package service

import (
	"context"
	"sync"

	"japan-address-api/internal/models"

	"github.com/stretchr/testify/mock"
)

// memStore is an in-memory BatchStore with skip-on-conflict semantics.
type memStore struct {
	mu          sync.Mutex
	regions     map[string]models.Region
	prefectures map[string]models.Prefecture
	cities      map[string]models.City
	addresses   map[string]models.AddressRecord
	seedCalls   int
	batches     [][]models.AddressRecord
	cityBatches [][]models.City
}

func newMemStore() *memStore {
	return &memStore{
		regions:     map[string]models.Region{},
		prefectures: map[string]models.Prefecture{},
		cities:      map[string]models.City{},
		addresses:   map[string]models.AddressRecord{},
	}
}

func (s *memStore) SeedReferenceData(_ context.Context, regions []models.Region, prefectures []models.Prefecture) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seedCalls++
	var seeded int64
	if len(s.regions) == 0 {
		for _, r := range regions {
			s.regions[r.ID] = r
			seeded++
		}
	}
	if len(s.prefectures) == 0 {
		for _, p := range prefectures {
			s.prefectures[p.Code] = p
			seeded++
		}
	}
	return seeded, nil
}

func (s *memStore) SaveBatch(_ context.Context, cities []models.City, records []models.AddressRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batches = append(s.batches, records)
	s.cityBatches = append(s.cityBatches, cities)

	for _, c := range cities {
		if _, ok := s.cities[c.Code]; !ok {
			s.cities[c.Code] = c
		}
	}

	var written int64
	for _, r := range records {
		key := r.CityCode + "/" + r.TownCode + "/" + r.Koaza
		if _, ok := s.addresses[key]; ok {
			continue
		}
		s.addresses[key] = r
		written++
	}
	return written, nil
}

func (s *memStore) addressCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.addresses)
}

// MockBatchStore is a mock implementation of the BatchStore interface
type MockBatchStore struct {
	mock.Mock
}

func (m *MockBatchStore) SeedReferenceData(ctx context.Context, regions []models.Region, prefectures []models.Prefecture) (int64, error) {
	args := m.Called(ctx, regions, prefectures)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBatchStore) SaveBatch(ctx context.Context, cities []models.City, records []models.AddressRecord) (int64, error) {
	args := m.Called(ctx, cities, records)
	return args.Get(0).(int64), args.Error(1)
}

func threeRecords() []models.AddressRecord {
	return []models.AddressRecord{
		{PrefCode: "13", PrefName: "東京都", CityCode: "13101", CityName: "千代田区", TownCode: "0001001", TownName: "丸の内一丁目", Latitude: 35.681236, Longitude: 139.767125},
		{PrefCode: "13", PrefName: "東京都", CityCode: "13101", CityName: "千代田区", TownCode: "0001002", TownName: "丸の内二丁目", Latitude: 35.6795, Longitude: 139.7649},
		{PrefCode: "27", PrefName: "大阪府", CityCode: "27128", CityName: "大阪市中央区", TownCode: "0003001", TownName: "本町一丁目", Latitude: 34.6829, Longitude: 135.5031},
	}
}

func threeRawRecords() []models.RawRecord {
	raws := []models.RawRecord{}
	for _, r := range threeRecords() {
		raws = append(raws, models.RawRecord{
			"pref_code": r.PrefCode,
			"pref":      r.PrefName,
			"city_code": r.CityCode,
			"city":      r.CityName,
			"town_id":   r.TownCode,
			"town":      r.TownName,
			"koaza":     r.Koaza,
			"lat":       "35",
			"lng":       "139",
		})
	}
	return raws
}

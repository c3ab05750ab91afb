// ABOUTME: Badger key/value storage backend for health samples.
// ABOUTME: Implements Repository with time-ordered keys and JSON values.
package storage

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/harperreed/healthlens/internal/models"
)

// Key prefixes
const (
	samplePrefix  = "s:"
	indexPrefix   = "i:"
	exportPrefix  = "e:"
	settingPrefix = "k:"
)

// BadgerStore implements Repository on top of BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	dir string
}

// BadgerConfig configures the Badger backend.
type BadgerConfig struct {
	Path     string
	InMemory bool
	Logger   *slog.Logger
}

// NewBadgerStore opens or creates a Badger database.
func NewBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else if err := os.MkdirAll(cfg.Path, 0750); err != nil {
		return nil, fmt.Errorf("create badger directory: %w", err)
	}
	opts = opts.WithLogger(newBadgerLogger(cfg.Logger))

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db, dir: cfg.Path}, nil
}

// Path returns the database directory.
func (s *BadgerStore) Path() string {
	return s.dir
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// sampleRecord is the stored JSON form of a sample.
type sampleRecord struct {
	ID         string    `json:"id"`
	MetricID   string    `json:"metric_id"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
	Source     string    `json:"source,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toRecord(s *models.Sample) sampleRecord {
	return sampleRecord{
		ID:         s.ID.String(),
		MetricID:   string(s.MetricID),
		Value:      s.Value,
		Unit:       s.Unit,
		RecordedAt: s.RecordedAt,
		Source:     s.Source,
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
	}
}

func (r sampleRecord) toSample() *models.Sample {
	id, _ := uuid.Parse(r.ID)
	return &models.Sample{
		ID:         id,
		MetricID:   models.MetricID(r.MetricID),
		Value:      r.Value,
		Unit:       r.Unit,
		RecordedAt: r.RecordedAt,
		Source:     r.Source,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
	}
}

type exportRecord struct {
	ID        string    `json:"id"`
	Format    string    `json:"format"`
	Metrics   []string  `json:"metrics"`
	Rows      int       `json:"rows"`
	Skipped   int       `json:"skipped"`
	CreatedAt time.Time `json:"created_at"`
}

// encodeTime encodes t so byte order matches time order, including
// instants before 1970.
func encodeTime(t time.Time) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(t.UnixNano())^(1<<63))
	return b
}

func metricPrefix(metric models.MetricID) []byte {
	return []byte(samplePrefix + string(metric) + ":")
}

// sampleKey is s:<metric>:<time><id>.
func sampleKey(s *models.Sample) []byte {
	key := metricPrefix(s.MetricID)
	key = append(key, encodeTime(s.RecordedAt)...)
	return append(key, s.ID[:]...)
}

// seekEnd returns a key that sorts after every key starting with prefix.
func seekEnd(prefix []byte) []byte {
	return append(append([]byte{}, prefix...), 0xFF)
}

// CreateSample stores a new sample.
func (s *BadgerStore) CreateSample(sample *models.Sample) error {
	data, err := json.Marshal(toRecord(sample))
	if err != nil {
		return fmt.Errorf("create sample: %w", err)
	}

	key := sampleKey(sample)
	err = s.db.Update(func(txn *badger.Txn) error {
		idx := []byte(indexPrefix + sample.ID.String())
		if _, err := txn.Get(idx); err == nil {
			return fmt.Errorf("sample %s already exists", sample.ID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(idx, key)
	})
	if err != nil {
		return fmt.Errorf("create sample: %w", err)
	}
	return nil
}

// GetSample retrieves a sample by ID or ID prefix.
func (s *BadgerStore) GetSample(idOrPrefix string) (*models.Sample, error) {
	var sample *models.Sample
	err := s.db.View(func(txn *badger.Txn) error {
		key, err := resolveKey(txn, idOrPrefix)
		if err != nil {
			return err
		}
		sample, err = readSample(txn, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sample, nil
}

// ListSamples returns up to limit samples of one metric, most recent first.
// A nil range returns the full history.
func (s *BadgerStore) ListSamples(ctx context.Context, metric models.MetricID, rng *models.DateRange, limit int) ([]*models.Sample, error) {
	prefix := metricPrefix(metric)
	seek := seekEnd(prefix)
	if rng != nil {
		seek = append(append([]byte{}, prefix...), encodeTime(rng.End.Add(time.Nanosecond))...)
	}

	var samples []*models.Sample
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var rec sampleRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode sample: %w", err)
			}

			if rng != nil {
				if rec.RecordedAt.After(rng.End) {
					continue
				}
				if rec.RecordedAt.Before(rng.Start) {
					break
				}
			}

			samples = append(samples, rec.toSample())
			if limit > 0 && len(samples) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	return samples, nil
}

// ListRecent retrieves samples with optional filtering by metric.
// Results are sorted by RecordedAt descending (most recent first).
func (s *BadgerStore) ListRecent(metric *models.MetricID, limit int) ([]*models.Sample, error) {
	if metric != nil {
		return s.ListSamples(context.Background(), *metric, nil, limit)
	}

	all, err := s.allSamples()
	if err != nil {
		return nil, err
	}
	sortRecent(all)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// DeleteSample removes a sample by ID or prefix.
func (s *BadgerStore) DeleteSample(idOrPrefix string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key, err := resolveKey(txn, idOrPrefix)
		if err != nil {
			return err
		}
		sample, err := readSample(txn, key)
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete([]byte(indexPrefix + sample.ID.String()))
	})
	if err != nil {
		return fmt.Errorf("delete sample: %w", err)
	}
	return nil
}

// CountSamples returns the number of stored samples per metric.
func (s *BadgerStore) CountSamples() (map[models.MetricID]int, error) {
	counts := make(map[models.MetricID]int)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(samplePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rest := strings.TrimPrefix(string(it.Item().Key()), samplePrefix)
			if i := strings.IndexByte(rest, ':'); i > 0 {
				counts[models.MetricID(rest[:i])]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count samples: %w", err)
	}
	return counts, nil
}

func (s *BadgerStore) allSamples() ([]*models.Sample, error) {
	var samples []*models.Sample
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(samplePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec sampleRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode sample: %w", err)
			}
			samples = append(samples, rec.toSample())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	return samples, nil
}

func sortRecent(samples []*models.Sample) {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].RecordedAt.After(samples[j].RecordedAt)
	})
}

// RecordExport appends an entry to the export history.
func (s *BadgerStore) RecordExport(r *models.ExportRecord) error {
	metrics := make([]string, len(r.Metrics))
	for i, m := range r.Metrics {
		metrics[i] = string(m)
	}
	data, err := json.Marshal(exportRecord{
		ID:        r.ID.String(),
		Format:    string(r.Format),
		Metrics:   metrics,
		Rows:      r.Rows,
		Skipped:   r.Skipped,
		CreatedAt: r.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("record export: %w", err)
	}

	key := append([]byte(exportPrefix), encodeTime(r.CreatedAt)...)
	key = append(key, r.ID[:]...)
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	}); err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}

// ListExports returns export history, newest first.
func (s *BadgerStore) ListExports(limit int) ([]*models.ExportRecord, error) {
	var records []*models.ExportRecord
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(exportPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(seekEnd(prefix)); it.ValidForPrefix(prefix); it.Next() {
			var rec exportRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode export: %w", err)
			}

			id, _ := uuid.Parse(rec.ID)
			metrics := make([]models.MetricID, len(rec.Metrics))
			for i, m := range rec.Metrics {
				metrics[i] = models.MetricID(m)
			}
			records = append(records, &models.ExportRecord{
				ID:        id,
				Format:    models.Format(rec.Format),
				Metrics:   metrics,
				Rows:      rec.Rows,
				Skipped:   rec.Skipped,
				CreatedAt: rec.CreatedAt,
			})
			if limit > 0 && len(records) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return records, nil
}

// GetSetting returns the value stored under key, or "" when unset.
func (s *BadgerStore) GetSetting(key string) (string, error) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(settingPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *BadgerStore) SetSetting(key, value string) error {
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(settingPrefix+key), []byte(value))
	}); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// resolveKey finds the sample key for an ID or unique ID prefix.
func resolveKey(txn *badger.Txn, idOrPrefix string) ([]byte, error) {
	prefix := []byte(indexPrefix + idOrPrefix)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	var matches []string
	var key []byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		matches = append(matches, strings.TrimPrefix(string(item.Key()), indexPrefix))
		v, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		key = v
	}

	if _, err := pickMatch(idOrPrefix, matches); err != nil {
		return nil, err
	}
	return key, nil
}

func readSample(txn *badger.Txn, key []byte) (*models.Sample, error) {
	item, err := txn.Get(key)
	if err != nil {
		return nil, fmt.Errorf("get sample: %w", err)
	}
	var rec sampleRecord
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return nil, fmt.Errorf("decode sample: %w", err)
	}
	return rec.toSample(), nil
}

// badgerLogger routes badger's printf-style logging into slog.
type badgerLogger struct {
	logger *slog.Logger
}

func newBadgerLogger(l *slog.Logger) badgerLogger {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return badgerLogger{logger: l.With("component", "badger")}
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/dgraph-io/badger/v4"
)

const (
	prefixBackground = "pref:bg:"
	prefixSettings   = "pref:settings:"
)

type Options struct {
	Path     string
	InMemory bool
}

// Open открывает badger с приглушённым собственным логгером.
func Open(opts Options) (*badger.DB, error) {
	var bo badger.Options
	if opts.InMemory {
		bo = badger.DefaultOptions("").WithInMemory(true)
	} else {
		bo = badger.DefaultOptions(opts.Path)
	}
	db, err := badger.Open(bo.WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return db, nil
}

// PreferenceRepository хранит пользовательские настройки в badger.
// Ключи: "pref:bg:{userID}" и "pref:settings:{userID}".
type PreferenceRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewPreferenceRepository(db *badger.DB, log *slog.Logger) *PreferenceRepository {
	if log == nil {
		log = slog.Default()
	}
	return &PreferenceRepository{db: db, log: log}
}

func (r *PreferenceRepository) GetBackground(_ context.Context, userID string) (string, error) {
	var out string
	err := r.get(prefixBackground+userID, func(v []byte) error {
		out = string(v)
		return nil
	})
	return out, err
}

func (r *PreferenceRepository) SetBackground(_ context.Context, userID, backgroundID string) error {
	return r.set(prefixBackground+userID, []byte(backgroundID))
}

func (r *PreferenceRepository) GetSettings(_ context.Context, userID string) (domain.UserSettings, error) {
	var s domain.UserSettings
	err := r.get(prefixSettings+userID, func(v []byte) error {
		return json.Unmarshal(v, &s)
	})
	return s, err
}

func (r *PreferenceRepository) SaveSettings(_ context.Context, userID string, s domain.UserSettings) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.set(prefixSettings+userID, b)
}

func (r *PreferenceRepository) DeleteSettings(_ context.Context, userID string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixSettings + userID))
	})
}

func (r *PreferenceRepository) get(key string, fn func([]byte) error) error {
	return r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrNoPreference
			}
			return err
		}
		return item.Value(fn)
	})
}

func (r *PreferenceRepository) set(key string, value []byte) error {
	r.log.Debug("store preference", slog.String("key", key))
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

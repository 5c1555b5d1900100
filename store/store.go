// Package store is the local persistence layer: the supported-language
// reference table and the single user-preferences record, backed by Badger.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/pb"
)

const (
	langPrefix = "lang/"
	prefsKey   = "prefs"
)

// Language is one row of the immutable supported-language table.
type Language struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	NativeName     string `json:"nativeName"`
	SupportsText   bool   `json:"supportsText"`
	SupportsVoice  bool   `json:"supportsVoice"`
	SupportsCamera bool   `json:"supportsCamera"`
}

// Preferences is the singleton user-preferences record. It is saved
// wholesale, never field by field.
type Preferences struct {
	DefaultSourceLanguage string `json:"defaultSourceLanguage"`
	DefaultTargetLanguage string `json:"defaultTargetLanguage"`
	Theme                 string `json:"theme"` // light, dark, system
	AutoDetectLanguage    bool   `json:"autoDetectLanguage"`
	TTSEnabled            bool   `json:"ttsEnabled"`
	CameraAutoTranslate   bool   `json:"cameraAutoTranslate"`
	FontSize              string `json:"fontSize"` // small, medium, large
}

// DefaultPreferences returns the record created on first access.
func DefaultPreferences() Preferences {
	return Preferences{
		DefaultSourceLanguage: "en",
		DefaultTargetLanguage: "vi",
		Theme:                 "light",
		AutoDetectLanguage:    true,
		TTSEnabled:            true,
		CameraAutoTranslate:   true,
		FontSize:              "medium",
	}
}

// Store is the Badger-backed local database. Create with Open.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store at dir. An empty dir opens an
// in-memory store, which is what tests use.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil && !errors.Is(err, badger.ErrDBClosed) {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// SeedLanguages bulk-writes the supported-language table, replacing any
// existing rows with the same code. Called once at first startup; the
// table is read-only afterwards.
func (s *Store) SeedLanguages(languages []Language) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, lang := range languages {
		data, err := json.Marshal(lang)
		if err != nil {
			return fmt.Errorf("marshal language %s: %w", lang.Code, err)
		}
		if err := wb.Set([]byte(langPrefix+lang.Code), data); err != nil {
			return fmt.Errorf("seed language %s: %w", lang.Code, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush language seed: %w", err)
	}
	return nil
}

// Languages returns the full supported-language table sorted by display
// name.
func (s *Store) Languages() ([]Language, error) {
	var languages []Language

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(langPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var lang Language
				if err := json.Unmarshal(val, &lang); err != nil {
					return err
				}
				languages = append(languages, lang)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read languages: %w", err)
	}

	sort.Slice(languages, func(a, b int) bool {
		return strings.ToLower(languages[a].Name) < strings.ToLower(languages[b].Name)
	})
	return languages, nil
}

// LanguageByCode looks up one language row; found is false for unknown
// codes.
func (s *Store) LanguageByCode(code string) (Language, bool, error) {
	var lang Language
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(langPrefix + code))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &lang)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Language{}, false, nil
	}
	if err != nil {
		return Language{}, false, fmt.Errorf("read language %s: %w", code, err)
	}
	return lang, true, nil
}

// ClearLanguages drops the whole language table. Maintenance only.
func (s *Store) ClearLanguages() error {
	err := s.db.DropPrefix([]byte(langPrefix))
	if err != nil {
		return fmt.Errorf("clear languages: %w", err)
	}
	return nil
}

// Preferences returns the user-preferences record, creating it with
// defaults when absent so exactly one record always exists.
func (s *Store) Preferences() (Preferences, error) {
	var prefs Preferences
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefsKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &prefs)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		prefs = DefaultPreferences()
		if err := s.SavePreferences(prefs); err != nil {
			return Preferences{}, err
		}
		return prefs, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("read preferences: %w", err)
	}
	return prefs, nil
}

// SavePreferences replaces the record wholesale.
func (s *Store) SavePreferences(prefs Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefsKey), data)
	})
	if err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// WatchPreferences invokes fn for every preferences save until ctx is
// cancelled. It blocks, so callers run it in its own goroutine.
func (s *Store) WatchPreferences(ctx context.Context, fn func(Preferences)) error {
	err := s.db.Subscribe(ctx, func(kvs *badger.KVList) error {
		for _, kv := range kvs.Kv {
			var prefs Preferences
			if err := json.Unmarshal(kv.Value, &prefs); err != nil {
				continue
			}
			fn(prefs)
		}
		return nil
	}, []pb.Match{{Prefix: []byte(prefsKey)}})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch preferences: %w", err)
	}
	return nil
}

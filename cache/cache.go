// Copyright 2026 Greation Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache provides a small TTL cache backed by BadgerDB. It holds
// source library listings between syncs so repeated reads within the TTL
// window skip the upstream call.
package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// DefaultTTL is how long a cached listing stays fresh.
const DefaultTTL = time.Hour

// ErrMiss is returned when a key is absent or its entry expired.
var ErrMiss = errors.New("cache miss")

// Cache is an expiring key-value store. Entries vanish on their own once
// the TTL elapses; expiry is handled by the database, not by callers.
type Cache struct {
	db     *badger.DB
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the entry lifetime. Default is DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a cache at the specified path, creating the directory if it
// doesn't exist. An empty path opens an in-memory cache, which is useful
// for tests and for deployments that don't want cross-run caching.
func Open(filePath string, opts ...Option) (*Cache, error) {
	var badgerOpts badger.Options

	if filePath == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			if err := os.MkdirAll(filePath, 0755); err != nil {
				return nil, err
			}
		} else if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		badgerOpts = badger.DefaultOptions(filePath)
	}

	c := &Cache{
		ttl:    DefaultTTL,
		logger: slog.Default().With("component", "listing-cache"),
	}
	for _, opt := range opts {
		opt(c)
	}

	badgerOpts.Logger = &badgerLoggerAdapter{logger: c.logger}
	badgerOpts.Compression = options.None

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}
	c.db = db

	return c, nil
}

// Get returns the value stored under key, or ErrMiss when absent or
// expired.
func (c *Cache) Get(key string) ([]byte, error) {
	var value []byte
	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores value under key with the configured TTL.
func (c *Cache) Set(key string, value []byte) error {
	return c.db.Update(func(tx *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value).WithTTL(c.ttl)
		return tx.SetEntry(entry)
	})
}

// Delete evicts key immediately. Missing keys are not an error.
func (c *Cache) Delete(key string) error {
	return c.db.Update(func(tx *badger.Txn) error {
		return tx.Delete([]byte(key))
	})
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

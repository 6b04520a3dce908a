// UNIREX - Unified Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unirex

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/tomtom215/unirex/internal/recommend"
)

// Blob is raw bundle bytes together with the name of the source that produced them.
type Blob struct {
	Data   []byte
	Source string
}

// Source fetches raw bundle bytes for a domain. A source without a bundle for
// the domain returns an error wrapping ErrBundleNotFound.
type Source interface {
	Name() string
	Fetch(ctx context.Context, d recommend.Domain) (*Blob, error)
}

// readLimited reads r fully, failing with ErrBundleTooLarge past maxBytes.
// maxBytes <= 0 means no limit.
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrBundleTooLarge, maxBytes)
	}
	return data, nil
}

// FileSource reads bundles from a local directory. For each domain it tries
// the .json.gz file first and then plain .json.
type FileSource struct {
	Dir      string
	MaxBytes int64
}

// Name implements Source.
func (s *FileSource) Name() string { return "file" }

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context, d recommend.Domain) (*Blob, error) {
	names, err := bundleFiles(d)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := s.read(filepath.Join(s.Dir, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return &Blob{Data: data, Source: s.Name()}, nil
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrBundleNotFound, d, s.Dir)
}

func (s *FileSource) read(path string) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // path is built from a fixed file name table
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f, s.MaxBytes)
}

// ChainSource tries each source in order and returns the first bundle found.
// When Cache is set, bundles downloaded by an HTTPSource are written to it.
type ChainSource struct {
	Sources []Source
	Cache   *BadgerStore
	Logger  zerolog.Logger
}

// Name implements Source.
func (c *ChainSource) Name() string { return "chain" }

// Fetch implements Source. A source that fails with anything other than
// ErrBundleNotFound is logged and skipped; when no source produces the bundle
// the failures are joined into the returned error.
func (c *ChainSource) Fetch(ctx context.Context, d recommend.Domain) (*Blob, error) {
	var errs []error
	for _, src := range c.Sources {
		blob, err := src.Fetch(ctx, d)
		if err == nil {
			c.fill(src, d, blob)
			return blob, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !errors.Is(err, ErrBundleNotFound) {
			c.Logger.Warn().Err(err).Str("source", src.Name()).Str("domain", string(d)).Msg("Bundle source failed")
		}
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no sources configured", ErrBundleNotFound)
	}
	return nil, errors.Join(errs...)
}

func (c *ChainSource) fill(src Source, d recommend.Domain, blob *Blob) {
	if _, remote := src.(*HTTPSource); !remote || c.Cache == nil {
		return
	}
	if err := c.Cache.Put(d, blob.Data); err != nil {
		c.Logger.Warn().Err(err).Str("domain", string(d)).Msg("Failed to cache bundle")
	}
}

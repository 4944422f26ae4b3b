package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const diskvDirName = "kv"

// DiskvKV stores one file per key under <dir>/kv.
type DiskvKV struct {
	d *diskv.Diskv
}

func OpenDiskv(dir string) (*DiskvKV, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("diskv backend requires a directory")
	}
	return &DiskvKV{d: diskv.New(diskv.Options{
		BasePath:     filepath.Join(dir, diskvDirName),
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

func (p *DiskvKV) Get(_ context.Context, key string) (string, bool, error) {
	if !p.d.Has(key) {
		return "", false, nil
	}
	b, err := p.d.Read(key)
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (p *DiskvKV) Set(_ context.Context, key, value string) error {
	return p.d.Write(key, []byte(value))
}

func (p *DiskvKV) Delete(_ context.Context, key string) error {
	if !p.d.Has(key) {
		return nil
	}
	return p.d.Erase(key)
}

func (p *DiskvKV) Close() error { return nil }

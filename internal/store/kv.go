package store

import (
	"context"
	"fmt"
	"strings"
)

// Keys used for persisted list state.
const (
	KeyChecked   = "virtualList_checkedItems"
	KeyScrollTop = "virtualList_scrollTop"
	KeySearch    = "virtualList_searchValue"
	KeySortOrder = "virtualList_sortOrder"
)

// AllKeys lists every key the application writes.
var AllKeys = []string{KeyChecked, KeyScrollTop, KeySearch, KeySortOrder}

// KV is a string-keyed store. Implementations are best effort: there is no transaction across
// keys, and callers must tolerate missing or stale values.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
	BackendMemory = "memory"
)

// Open returns the KV implementation for backend, rooted at dir.
func Open(ctx context.Context, backend, dir string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		return OpenSQLite(ctx, dir)
	case BackendDiskv:
		return OpenDiskv(dir)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q (want sqlite|diskv|memory)", backend)
	}
}

package store

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"vlist/internal/model"

	"github.com/klauspost/compress/zstd"
)

// Override snapshots larger than this are zstd compressed and base64 encoded.
const compressThreshold = 64 * 1024

const zstdPrefix = "zstd:"

var (
	zstdOnce sync.Once
	zstdEnc  *zstd.Encoder
	zstdDec  *zstd.Decoder
	zstdErr  error
)

func zstdCodec() (*zstd.Encoder, *zstd.Decoder, error) {
	zstdOnce.Do(func() {
		zstdEnc, zstdErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if zstdErr != nil {
			return
		}
		zstdDec, zstdErr = zstd.NewReader(nil)
	})
	return zstdEnc, zstdDec, zstdErr
}

// EncodeOverrides renders overrides as a JSON array of [identity, position] pairs.
func EncodeOverrides(overrides []model.Override) (string, error) {
	pairs := make([][2]int, len(overrides))
	for i, o := range overrides {
		pairs[i] = [2]int{o.Identity, o.Position}
	}
	b, err := json.Marshal(pairs)
	if err != nil {
		return "", err
	}
	if len(b) <= compressThreshold {
		return string(b), nil
	}
	enc, _, err := zstdCodec()
	if err != nil {
		return "", err
	}
	return zstdPrefix + base64.StdEncoding.EncodeToString(enc.EncodeAll(b, nil)), nil
}

// DecodeOverrides parses a value written by EncodeOverrides. An empty value is an empty table.
func DecodeOverrides(s string) ([]model.Override, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	b := []byte(s)
	if rest, ok := strings.CutPrefix(s, zstdPrefix); ok {
		raw, err := base64.StdEncoding.DecodeString(rest)
		if err != nil {
			return nil, fmt.Errorf("decode sort order: %w", err)
		}
		_, dec, err := zstdCodec()
		if err != nil {
			return nil, err
		}
		b, err = dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress sort order: %w", err)
		}
	}
	var pairs [][]int
	if err := json.Unmarshal(b, &pairs); err != nil {
		return nil, fmt.Errorf("parse sort order: %w", err)
	}
	out := make([]model.Override, 0, len(pairs))
	for _, p := range pairs {
		if len(p) != 2 {
			return nil, errors.New("parse sort order: entries must be [identity, position] pairs")
		}
		out = append(out, model.Override{Identity: p[0], Position: p[1]})
	}
	return out, nil
}

// EncodeChecked renders the selection as a JSON array of identities.
func EncodeChecked(ids []model.Identity) string {
	if ids == nil {
		ids = []model.Identity{}
	}
	b, _ := json.Marshal(ids)
	return string(b)
}

func DecodeChecked(s string, n int) ([]model.Identity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var ids []model.Identity
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil, fmt.Errorf("parse checked items: %w", err)
	}
	for _, id := range ids {
		if id < 0 || id >= n {
			return nil, fmt.Errorf("parse checked items: identity %d out of range", id)
		}
	}
	return ids, nil
}

func EncodeScroll(offset int) string { return strconv.Itoa(offset) }

func DecodeScroll(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse scroll offset: %w", err)
	}
	if v < 0 {
		return 0, fmt.Errorf("parse scroll offset: negative value %d", v)
	}
	return v, nil
}

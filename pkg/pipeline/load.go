package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/gedgraph/pkg/cache"
	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/gedcom"
	"github.com/matzehuels/gedgraph/pkg/observability"
	"github.com/matzehuels/gedgraph/pkg/records"
)

const (
	readerGEDCOM = "gedcom"
	readerJSON   = "json"

	cacheKeyType = "records"
)

// readerFor picks the reader by file extension.
func readerFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return readerJSON
	}
	return readerGEDCOM
}

// Load reads the record set at path and reports whether it came from the
// cache. Only GEDCOM input is cached; a record-set JSON export is already
// the cached form.
func (r *Runner) Load(ctx context.Context, path string, refresh bool) (*records.Set, bool, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, path)

	rs, hit, err := r.load(ctx, path, refresh)

	n, u := 0, 0
	if rs != nil {
		n, u = rs.IndividualCount(), rs.UnionCount()
	}
	observability.Pipeline().OnLoadComplete(ctx, path, n, u, time.Since(start), err)
	return rs, hit, err
}

func (r *Runner) load(ctx context.Context, path string, refresh bool) (*records.Set, bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}

	reader := readerFor(path)
	if reader == readerJSON {
		rs, err := records.ReadJSON(bytes.NewReader(content))
		return rs, false, err
	}

	key := cache.RecordsKey(reader, content)
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			rs, err := records.ReadJSON(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, cacheKeyType)
				return rs, true, nil
			}
			r.Logger.Debug("discarding unreadable cache entry", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	rs, err := gedcom.Read(bytes.NewReader(content))
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := records.WriteJSON(rs, &buf); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.TTLRecords); err != nil {
			r.Logger.Debug("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, buf.Len())
		}
	}
	return rs, false, nil
}

package market

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/config"
	"github.com/veyl/abyssal-tracker-tui/internal/logger"
)

// typeIDChunkDelay spaces consecutive bulk lookups to stay polite to the API.
const typeIDChunkDelay = 200 * time.Millisecond

// esiIDsResponse is the slice of the bulk resolve response we care about.
// Names that are not inventory types come back under other keys and are
// ignored.
type esiIDsResponse struct {
	InventoryTypes []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"inventory_types"`
}

// IdentifierResolver maps item names to type IDs, consulting the persistent
// cache first and the ESI bulk endpoint for the remainder.
type IdentifierResolver struct {
	cache      *IdentifierCache
	httpClient *http.Client
	chunkDelay time.Duration
}

// NewIdentifierResolver creates a resolver over the given cache.
func NewIdentifierResolver(cache *IdentifierCache) *IdentifierResolver {
	return &IdentifierResolver{
		cache:      cache,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		chunkDelay: typeIDChunkDelay,
	}
}

// Resolve returns type IDs for as many of the given names as possible. Names
// the API cannot resolve, and whole chunks that fail, are simply absent from
// the result; one network failure never aborts the rest. The cache file is
// rewritten at most once per call.
func (r *IdentifierResolver) Resolve(names []string) map[string]int64 {
	resolved := make(map[string]int64, len(names))
	var missing []string
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if id, ok := r.cache.Get(name); ok {
			resolved[name] = id
		} else {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return resolved
	}
	sort.Strings(missing)

	logger.Info("resolving item identifiers",
		"cached", len(resolved),
		"missing", len(missing))

	for start := 0; start < len(missing); start += config.TypeIDChunkSize {
		if start > 0 {
			time.Sleep(r.chunkDelay)
		}
		end := min(start+config.TypeIDChunkSize, len(missing))
		chunk := missing[start:end]

		ids, err := r.resolveChunk(chunk)
		if err != nil {
			logger.Warn("identifier chunk failed, skipping",
				"names", len(chunk),
				"error", err)
			continue
		}
		for name, id := range ids {
			resolved[name] = id
			r.cache.Put(name, id)
		}
	}

	if err := r.cache.Flush(); err != nil {
		logger.Warn("identifier cache flush failed", "error", err)
	}
	return resolved
}

// resolveChunk posts one batch of names to the ESI bulk resolve endpoint.
func (r *IdentifierResolver) resolveChunk(names []string) (map[string]int64, error) {
	payload, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("encoding names: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, config.ESIUniverseIDsURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolving identifiers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("identifier resolve returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed esiIDsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding identifier response: %w", err)
	}

	ids := make(map[string]int64, len(parsed.InventoryTypes))
	for _, it := range parsed.InventoryTypes {
		ids[it.Name] = it.ID
	}
	return ids, nil
}

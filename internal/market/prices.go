package market

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/config"
	"github.com/veyl/abyssal-tracker-tui/internal/logger"
)

// priceChunkDelay spaces consecutive aggregate requests.
const priceChunkDelay = 50 * time.Millisecond

// PriceEntry holds the two aggregate figures the tracker uses: the best buy
// order (loot is sold to buy orders) and the best sell order (filaments are
// bought from sell orders).
type PriceEntry struct {
	BuyMax  float64
	SellMin float64
}

// fuzzworkAggregate mirrors the aggregate endpoint's per-type shape. The
// service encodes every number as a JSON string.
type fuzzworkAggregate struct {
	Buy struct {
		Max string `json:"max"`
	} `json:"buy"`
	Sell struct {
		Min string `json:"min"`
	} `json:"sell"`
}

// PriceResolver fetches market aggregates for batches of type IDs from one
// reference region.
type PriceResolver struct {
	httpClient *http.Client
	regionID   int
	chunkDelay time.Duration
}

// NewPriceResolver creates a resolver quoting against the given region.
func NewPriceResolver(regionID int) *PriceResolver {
	if regionID == 0 {
		regionID = config.DefaultRegionID
	}
	return &PriceResolver{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		regionID:   regionID,
		chunkDelay: priceChunkDelay,
	}
}

// Fetch returns aggregates for as many of the given type IDs as possible.
// Failed chunks are skipped with a warning; missing IDs are simply absent
// from the result.
func (p *PriceResolver) Fetch(typeIDs []int64) map[int64]PriceEntry {
	prices := make(map[int64]PriceEntry, len(typeIDs))
	seen := make(map[int64]bool, len(typeIDs))
	unique := make([]int64, 0, len(typeIDs))
	for _, id := range typeIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return prices
	}

	for start := 0; start < len(unique); start += config.PriceChunkSize {
		if start > 0 {
			time.Sleep(p.chunkDelay)
		}
		end := min(start+config.PriceChunkSize, len(unique))
		chunk := unique[start:end]

		entries, err := p.fetchChunk(chunk)
		if err != nil {
			logger.Warn("price chunk failed, skipping",
				"types", len(chunk),
				"error", err)
			continue
		}
		for id, entry := range entries {
			prices[id] = entry
		}
	}

	logger.Debug("price fetch complete",
		"requested", len(unique),
		"priced", len(prices),
		"region", p.regionID)
	return prices
}

// fetchChunk requests aggregates for one batch of type IDs.
func (p *PriceResolver) fetchChunk(typeIDs []int64) (map[int64]PriceEntry, error) {
	idStrs := make([]string, len(typeIDs))
	for i, id := range typeIDs {
		idStrs[i] = strconv.FormatInt(id, 10)
	}
	query := url.Values{
		"region": {strconv.Itoa(p.regionID)},
		"types":  {strings.Join(idStrs, ",")},
	}

	req, err := http.NewRequest(http.MethodGet, config.FuzzworkAggregateURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching aggregates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("aggregate fetch returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed map[string]fuzzworkAggregate
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding aggregate response: %w", err)
	}

	entries := make(map[int64]PriceEntry, len(parsed))
	for key, agg := range parsed {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			logger.Warn("unparsable type id in aggregate response", "key", key)
			continue
		}
		entries[id] = PriceEntry{
			BuyMax:  parsePrice(agg.Buy.Max, key, "buy.max"),
			SellMin: parsePrice(agg.Sell.Min, key, "sell.min"),
		}
	}
	return entries, nil
}

// parsePrice converts one string-encoded figure, treating absent or malformed
// values as zero.
func parsePrice(raw, typeID, field string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Warn("unparsable price figure", "type_id", typeID, "field", field, "value", raw)
		return 0
	}
	return v
}

package config

// Market endpoints. Name lookups go through the ESI bulk resolver, price
// aggregates through Fuzzwork.
const (
	ESIUniverseIDsURL    = "https://esi.evetech.net/latest/universe/ids/"
	FuzzworkAggregateURL = "https://market.fuzzwork.co.uk/aggregates/"
)

// DefaultRegionID is The Forge, the reference market region for all quotes.
const DefaultRegionID = 10000002

// Batch limits imposed by the external services.
const (
	TypeIDChunkSize = 20
	PriceChunkSize  = 100
)

// FilamentCount is the number of filaments consumed per run. Entry cost is
// priced for a frigate group of three regardless of actual party size.
const FilamentCount = 3

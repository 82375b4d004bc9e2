package models

// MarketStats summarizes competitor prices relative to ours
type MarketStats struct {
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Mean          float64 `json:"mean"`
	Median        float64 `json:"median"`
	OurPercentile int     `json:"our_percentile"` // Share of competitors priced at or above us, 0-100
	Competitors   int     `json:"competitors"`
}

// PricePosition describes where our price sits among competitors
type PricePosition struct {
	Label              string  `json:"label"` // very_low, below_median, above_median, high
	CheaperCompetitors int     `json:"cheaper_competitors"`
	PricierCompetitors int     `json:"pricier_competitors"`
	VsMinPercent       float64 `json:"vs_min_percent"`
	VsMeanPercent      float64 `json:"vs_mean_percent"`
	VsMedianPercent    float64 `json:"vs_median_percent"`
	VsMaxPercent       float64 `json:"vs_max_percent"`
	OptimalLow         float64 `json:"optimal_low"`
	OptimalHigh        float64 `json:"optimal_high"`
}

// CompetitorAnalysis is the outcome of analyzing a competitor snapshot.
// When Found is false Stats, Position and Top are empty and Message says why.
type CompetitorAnalysis struct {
	Found    bool                `json:"found"`
	Message  string              `json:"message,omitempty"`
	Stats    *MarketStats        `json:"market_stats,omitempty"`
	Position *PricePosition      `json:"position,omitempty"`
	Top      []CompetitorListing `json:"top_competitors"`
}

// CompetitorReport is the response of AnalyzeCompetitors
type CompetitorReport struct {
	OurProduct     Product             `json:"our_product"`
	Found          bool                `json:"found"`
	Message        string              `json:"message,omitempty"`
	MarketStats    *MarketStats        `json:"market_stats,omitempty"`
	Position       *PricePosition      `json:"position,omitempty"`
	TopCompetitors []CompetitorListing `json:"top_competitors"`
}

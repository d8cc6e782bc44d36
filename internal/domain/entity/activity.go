package entity

import (
	"sort"
	"time"
)

// InteractionCounts is the lifetime test/download tally for a token,
// with the last-seen time of each action when the backend reports it.
type InteractionCounts struct {
	Tests          int64  `json:"tests"`
	Downloads      int64  `json:"downloads"`
	LastTestAt     string `json:"lastTestAt,omitempty"`
	LastDownloadAt string `json:"lastDownloadAt,omitempty"`
}

// BurnRecord is one append-only supply-burn entry. Entries are displayed
// most-recent-first and never mutated locally.
type BurnRecord struct {
	CreatedAt          string  `json:"createdAt"`
	ReasonAction       string  `json:"reasonAction"`
	InteractionCountAt int64   `json:"interactionCountAt"`
	Status             string  `json:"status"`
	TxID               string  `json:"txId,omitempty"`
	ConsensusTimestamp string  `json:"consensusTimestamp,omitempty"`
	Amount             float64 `json:"amount,omitempty"`
}

// FeeFeedEntry is one fee-transfer notification from the creator fee feed.
type FeeFeedEntry struct {
	Timestamp      string  `json:"timestamp"`
	Creator        string  `json:"creator,omitempty"`
	CreatorTokens  float64 `json:"creatorTokens,omitempty"`
	PlatformTokens float64 `json:"platformTokens,omitempty"`
	TokenDelta     float64 `json:"tokenDelta,omitempty"`
}

// ActivityKind classifies one recent-activity row.
type ActivityKind string

const (
	ActivityTest     ActivityKind = "test"
	ActivityDownload ActivityKind = "download"
	ActivityBuy      ActivityKind = "buy"
	ActivitySell     ActivityKind = "sell"
)

// ActivityItem is one row of the recent-activity feed.
type ActivityItem struct {
	Kind      ActivityKind `json:"type"`
	User      string       `json:"user,omitempty"`
	Timestamp string       `json:"timestamp"`
	Amount    float64      `json:"amount,omitempty"`
}

// MergeRecentActivity combines interaction last-event times with the most
// recent trades into a single feed sorted newest-first and trimmed to
// limit. Interaction timestamps come from the backend as strings, so they
// are parsed rather than compared lexicographically; an unparseable one
// sorts last.
func MergeRecentActivity(counts InteractionCounts, trades []TradePoint, limit int) []ActivityItem {
	if limit <= 0 {
		limit = 10
	}
	type timedItem struct {
		item ActivityItem
		at   time.Time
	}
	items := make([]timedItem, 0, limit+2)
	if counts.LastTestAt != "" {
		items = append(items, timedItem{
			item: ActivityItem{Kind: ActivityTest, Timestamp: counts.LastTestAt},
			at:   parseActivityTime(counts.LastTestAt),
		})
	}
	if counts.LastDownloadAt != "" {
		items = append(items, timedItem{
			item: ActivityItem{Kind: ActivityDownload, Timestamp: counts.LastDownloadAt},
			at:   parseActivityTime(counts.LastDownloadAt),
		})
	}
	start := len(trades) - limit
	if start < 0 {
		start = 0
	}
	for i := len(trades) - 1; i >= start; i-- {
		t := trades[i]
		kind := ActivityBuy
		if t.Side == TradeSideSell {
			kind = ActivitySell
		}
		amount := t.Hbar
		if amount == 0 {
			amount = t.Token
		}
		at := time.UnixMilli(t.Time).UTC()
		items = append(items, timedItem{
			item: ActivityItem{
				Kind:      kind,
				Timestamp: at.Format(time.RFC3339),
				Amount:    amount,
			},
			at: at,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.After(items[j].at)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]ActivityItem, len(items))
	for i, it := range items {
		out[i] = it.item
	}
	return out
}

func parseActivityTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}

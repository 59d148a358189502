package models

import "strings"

type Order string

const (
	OrderRandom          Order = "random"
	OrderName            Order = "name"
	OrderURL             Order = "url"
	OrderHomepage        Order = "homepage"
	OrderFavicon         Order = "favicon"
	OrderTags            Order = "tags"
	OrderCountry         Order = "country"
	OrderState           Order = "state"
	OrderLanguage        Order = "language"
	OrderVotes           Order = "votes"
	OrderCodec           Order = "codec"
	OrderBitrate         Order = "bitrate"
	OrderLastCheckOK     Order = "lastcheckok"
	OrderLastCheckTime   Order = "lastchecktime"
	OrderClickTimestamp  Order = "clicktimestamp"
	OrderClickCount      Order = "clickcount"
	OrderClickTrend      Order = "clicktrend"
	OrderChangeTimestamp Order = "changetimestamp"
)

var knownOrders = map[Order]struct{}{
	OrderRandom: {}, OrderName: {}, OrderURL: {}, OrderHomepage: {}, OrderFavicon: {},
	OrderTags: {}, OrderCountry: {}, OrderState: {}, OrderLanguage: {}, OrderVotes: {},
	OrderCodec: {}, OrderBitrate: {}, OrderLastCheckOK: {}, OrderLastCheckTime: {},
	OrderClickTimestamp: {}, OrderClickCount: {}, OrderClickTrend: {}, OrderChangeTimestamp: {},
}

// ParseOrder returns OrderVotes for empty or unknown input.
func ParseOrder(s string) Order {
	o := Order(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := knownOrders[o]; ok {
		return o
	}
	return OrderVotes
}

// SearchParams describes one catalog query. A non-empty UUIDs set overrides
// every other field and resolves to direct lookups.
type SearchParams struct {
	Text        string
	CountryCode string
	Tags        []string
	Order       Order
	Reverse     bool
	UUIDs       []string
}

func (p SearchParams) HasUUIDs() bool {
	return len(p.UUIDs) > 0
}

package model

import "time"

// PlayerCountsLatest is the body of GET /v1/player_counts/latest. Unlike the
// history endpoint it is a single object.
type PlayerCountsLatest struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
}

func (p *PlayerCountsLatest) UnmarshalJSON(data []byte) error {
	o := newObject("PlayerCountsLatest", data)
	timestamp(o, "timestamp", &p.Timestamp)
	field(o, "count", &p.Count)
	return o.Err()
}

// PlayerCountsHistory is the body of GET /v1/player_counts/history.
type PlayerCountsHistory struct {
	Items []PlayerCountsHistoryItem
}

type PlayerCountsHistoryItem struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
}

func (p *PlayerCountsHistory) UnmarshalJSON(data []byte) error {
	return decodeArray("PlayerCountsHistory", data, &p.Items)
}

func (p PlayerCountsHistory) MarshalJSON() ([]byte, error) {
	return marshalItems(p.Items)
}

func (i *PlayerCountsHistoryItem) UnmarshalJSON(data []byte) error {
	o := newObject("PlayerCountsHistoryItem", data)
	timestamp(o, "timestamp", &i.Timestamp)
	field(o, "count", &i.Count)
	return o.Err()
}

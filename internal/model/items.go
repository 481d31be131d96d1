package model

// Items is the body of GET /v1/items.
type Items struct {
	Items []Item
}

// Item is a tradable catalog entry. Only the two names are guaranteed.
type Item struct {
	MarketHashName     string   `json:"market_hash_name"`
	HashName           string   `json:"hash_name"`
	NameID             *int64   `json:"nameid,omitempty"`
	ClassID            *string  `json:"classid,omitempty"`
	Exterior           *string  `json:"exterior,omitempty"`
	Category           *string  `json:"category,omitempty"`
	Weapon             *string  `json:"weapon,omitempty"`
	MaxStickerAmount   *int     `json:"max_sticker_amount,omitempty"`
	UsedByClass        *string  `json:"used_by_class,omitempty"`
	Quality            *string  `json:"quality,omitempty"`
	Type               *string  `json:"type,omitempty"`
	StickerType        *string  `json:"sticker_type,omitempty"`
	GraffitiType       *string  `json:"graffiti_type,omitempty"`
	PatchType          *string  `json:"patch_type,omitempty"`
	Collection         *string  `json:"collection,omitempty"`
	StickerCollection  *string  `json:"sticker_collection,omitempty"`
	GraffitiCollection *string  `json:"graffiti_collection,omitempty"`
	PatchCollection    *string  `json:"patch_collection,omitempty"`
	GraffitiColor      *string  `json:"graffiti_color,omitempty"`
	ProfessionalPlayer *string  `json:"professional_player,omitempty"`
	Tournament         *string  `json:"tournament,omitempty"`
	Team               *string  `json:"team,omitempty"`
	MinFloat           *float64 `json:"min_float,omitempty"`
	MaxFloat           *float64 `json:"max_float,omitempty"`
	DropPool           *string  `json:"droppool,omitempty"`
	ReleaseDT          *string  `json:"release_dt,omitempty"`
	AkamaiIconURL      *string  `json:"akamai_icon_url,omitempty"`
	CloudflareIconURL  *string  `json:"cloudflare_icon_url,omitempty"`
}

func (it *Items) UnmarshalJSON(data []byte) error {
	return decodeArray("Items", data, &it.Items)
}

func (it Items) MarshalJSON() ([]byte, error) {
	return marshalItems(it.Items)
}

func (i *Item) UnmarshalJSON(data []byte) error {
	o := newObject("Item", data)
	field(o, "market_hash_name", &i.MarketHashName)
	field(o, "hash_name", &i.HashName)
	pointer(o, "nameid", optional, &i.NameID)
	pointer(o, "classid", optional, &i.ClassID)
	pointer(o, "exterior", optional, &i.Exterior)
	pointer(o, "category", optional, &i.Category)
	pointer(o, "weapon", optional, &i.Weapon)
	pointer(o, "max_sticker_amount", optional, &i.MaxStickerAmount)
	pointer(o, "used_by_class", optional, &i.UsedByClass)
	pointer(o, "quality", optional, &i.Quality)
	pointer(o, "type", optional, &i.Type)
	pointer(o, "sticker_type", optional, &i.StickerType)
	pointer(o, "graffiti_type", optional, &i.GraffitiType)
	pointer(o, "patch_type", optional, &i.PatchType)
	pointer(o, "collection", optional, &i.Collection)
	pointer(o, "sticker_collection", optional, &i.StickerCollection)
	pointer(o, "graffiti_collection", optional, &i.GraffitiCollection)
	pointer(o, "patch_collection", optional, &i.PatchCollection)
	pointer(o, "graffiti_color", optional, &i.GraffitiColor)
	pointer(o, "professional_player", optional, &i.ProfessionalPlayer)
	pointer(o, "tournament", optional, &i.Tournament)
	pointer(o, "team", optional, &i.Team)
	pointer(o, "min_float", optional, &i.MinFloat)
	pointer(o, "max_float", optional, &i.MaxFloat)
	pointer(o, "droppool", optional, &i.DropPool)
	pointer(o, "release_dt", optional, &i.ReleaseDT)
	pointer(o, "akamai_icon_url", optional, &i.AkamaiIconURL)
	pointer(o, "cloudflare_icon_url", optional, &i.CloudflareIconURL)
	return o.Err()
}

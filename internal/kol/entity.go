// AngelaMos | 2026
// entity.go

package kol

// KOL is one influencer profile. Attribute names carry the store's original
// spelling, spaces and symbols included; the update path escapes them through
// expression placeholders instead of interpolating them.
type KOL struct {
	ID         string   `json:"ID"                dynamodbav:"ID"`
	Name       string   `json:"Name"              dynamodbav:"Name"`
	Platform   string   `json:"Platform"          dynamodbav:"Platform"`
	Sex        string   `json:"Sex"               dynamodbav:"Sex"`
	Categories []string `json:"Categories"        dynamodbav:"Categories"`
	Tel        string   `json:"Tel"               dynamodbav:"Tel"`
	Link       string   `json:"Link"              dynamodbav:"Link"`
	Followers  string   `json:"Followers"         dynamodbav:"Followers"`
	PhotoCost  float64  `json:"Photo Cost / Kols" dynamodbav:"Photo Cost / Kols"`
	VideoCost  float64  `json:"VDO Cost / Kols"   dynamodbav:"VDO Cost / Kols"`
	ER         string   `json:"ER%"               dynamodbav:"ER%"`
}

// Attribute names as stored. DefaultRules in rules.go fixes their validation
// sequence.
const (
	FieldName       = "Name"
	FieldPlatform   = "Platform"
	FieldSex        = "Sex"
	FieldCategories = "Categories"
	FieldTel        = "Tel"
	FieldLink       = "Link"
	FieldFollowers  = "Followers"
	FieldPhotoCost  = "Photo Cost / Kols"
	FieldVideoCost  = "VDO Cost / Kols"
	FieldER         = "ER%"
)

// fromMap builds a KOL from an already-validated payload map. Values carry
// the types the validator accepted: strings, float64 numbers, and []any of
// strings for Categories.
func fromMap(fields map[string]any) *KOL {
	k := &KOL{}

	if v, ok := fields[FieldName].(string); ok {
		k.Name = v
	}
	if v, ok := fields[FieldPlatform].(string); ok {
		k.Platform = v
	}
	if v, ok := fields[FieldSex].(string); ok {
		k.Sex = v
	}
	if v, ok := fields[FieldCategories].([]any); ok {
		k.Categories = make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				k.Categories = append(k.Categories, s)
			}
		}
	}
	if v, ok := fields[FieldTel].(string); ok {
		k.Tel = v
	}
	if v, ok := fields[FieldLink].(string); ok {
		k.Link = v
	}
	if v, ok := fields[FieldFollowers].(string); ok {
		k.Followers = v
	}
	if v, ok := fields[FieldPhotoCost].(float64); ok {
		k.PhotoCost = v
	}
	if v, ok := fields[FieldVideoCost].(float64); ok {
		k.VideoCost = v
	}
	if v, ok := fields[FieldER].(string); ok {
		k.ER = v
	}

	return k
}

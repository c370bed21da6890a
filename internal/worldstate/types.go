// Package worldstate models the upstream aggregate game-state snapshot and
// fetches it with caching and request coalescing.
package worldstate

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Date decodes the upstream mongo-export date encoding
// {"$date":{"$numberLong":"<epoch-ms>"}} as well as bare numbers and
// numeric strings. The zero value means "no date".
type Date struct {
	Millis int64
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		return nil
	}

	// Bare number or numeric string.
	if n, err := strconv.ParseInt(strings.Trim(s, `"`), 10, 64); err == nil {
		d.Millis = n
		return nil
	}

	var wrapped struct {
		Date struct {
			NumberLong string `json:"$numberLong"`
		} `json:"$date"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return nil // malformed dates degrade to zero, never fail a snapshot
	}
	n, err := strconv.ParseInt(wrapped.Date.NumberLong, 10, 64)
	if err != nil {
		return nil
	}
	d.Millis = n
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Millis)
}

func (d Date) IsZero() bool { return d.Millis == 0 }

func (d Date) Time() time.Time {
	return time.UnixMilli(d.Millis).UTC()
}

// TextKind says where a Text's string came from.
type TextKind int

const (
	TextAbsent TextKind = iota
	TextRaw
	TextValue
	TextType
	TextEnemy
)

// Text is the upstream's string-or-object text shape: either a plain
// string or an object wrapping the string under "value", "type" or
// "enemy". Decoding never fails; unrecognized shapes come out Absent.
type Text struct {
	Kind TextKind
	Str  string
}

func (t *Text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s == "" {
			return nil
		}
		t.Kind = TextRaw
		t.Str = s
		return nil
	}

	var obj struct {
		Value string `json:"value"`
		Type  string `json:"type"`
		Enemy string `json:"enemy"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil
	}
	switch {
	case obj.Value != "":
		t.Kind, t.Str = TextValue, obj.Value
	case obj.Type != "":
		t.Kind, t.Str = TextType, obj.Type
	case obj.Enemy != "":
		t.Kind, t.Str = TextEnemy, obj.Enemy
	}
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Str)
}

// String returns the coerced text, empty when Absent.
func (t Text) String() string { return t.Str }

// CoerceText applies the same string-or-object coercion to an already
// decoded value (string, map, or nil).
func CoerceText(v any) Text {
	switch x := v.(type) {
	case nil:
		return Text{}
	case string:
		if x == "" {
			return Text{}
		}
		return Text{Kind: TextRaw, Str: x}
	case Text:
		return x
	case map[string]any:
		if s, ok := x["value"].(string); ok && s != "" {
			return Text{Kind: TextValue, Str: s}
		}
		if s, ok := x["type"].(string); ok && s != "" {
			return Text{Kind: TextType, Str: s}
		}
		if s, ok := x["enemy"].(string); ok && s != "" {
			return Text{Kind: TextEnemy, Str: s}
		}
	}
	return Text{}
}

// OID decodes {"$oid":"..."} or a plain string identifier.
type OID string

func (o *OID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*o = OID(s)
		return nil
	}
	var wrapped struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return nil
	}
	*o = OID(wrapped.OID)
	return nil
}

func (o OID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(o))
}

// CountedItem is a reward item with a quantity.
type CountedItem struct {
	ItemType  string `json:"ItemType"`
	ItemCount int64  `json:"ItemCount"`
}

// MissionReward is the reward block attached to alerts and goals.
type MissionReward struct {
	Credits      int64         `json:"credits,omitempty"`
	Items        []string      `json:"items,omitempty"`
	CountedItems []CountedItem `json:"countedItems,omitempty"`
	// ItemString, when present, is already display text and bypasses
	// item-path resolution entirely.
	ItemString string `json:"itemString,omitempty"`
}

// MissionInfo describes the mission behind an alert.
type MissionInfo struct {
	MissionType   string        `json:"missionType,omitempty"`
	Faction       string        `json:"faction,omitempty"`
	Location      string        `json:"location,omitempty"`
	Description   string        `json:"descText,omitempty"`
	MissionReward MissionReward `json:"missionReward,omitempty"`
}

// Alert is one live timed alert.
type Alert struct {
	ID          OID         `json:"_id"`
	Activation  Date        `json:"Activation"`
	Expiry      Date        `json:"Expiry"`
	Node        string      `json:"Node,omitempty"`
	MissionInfo MissionInfo `json:"MissionInfo"`
}

// Goal is one live operation/event entity.
type Goal struct {
	ID             OID             `json:"_id"`
	Activation     Date            `json:"Activation"`
	Expiry         Date            `json:"Expiry"`
	Node           string          `json:"Node,omitempty"`
	Faction        string          `json:"Faction,omitempty"`
	Desc           string          `json:"Desc,omitempty"`
	ToolTip        string          `json:"ToolTip,omitempty"`
	Reward         MissionReward   `json:"Reward,omitempty"`
	InterimRewards []MissionReward `json:"InterimRewards,omitempty"`
}

// Invasion is one live invasion.
type Invasion struct {
	ID              OID           `json:"_id"`
	Activation      Date          `json:"Activation"`
	Node            string        `json:"Node"`
	Faction         string        `json:"Faction,omitempty"`
	DefenderFaction string        `json:"DefenderFaction,omitempty"`
	AttackerReward  MissionReward `json:"AttackerReward,omitempty"`
	DefenderReward  MissionReward `json:"DefenderReward,omitempty"`
	Goal            int64         `json:"Goal,omitempty"`
	Count           int64         `json:"Count,omitempty"`
	Completed       bool          `json:"Completed,omitempty"`
}

// SortieVariant is one mission slot in a sortie.
type SortieVariant struct {
	MissionType  string `json:"missionType"`
	ModifierType string `json:"modifierType,omitempty"`
	Node         string `json:"node"`
	Tileset      string `json:"tileset,omitempty"`
}

// Sortie covers both daily sorties (Variants) and archon hunts (Missions).
type Sortie struct {
	ID         OID             `json:"_id"`
	Activation Date            `json:"Activation"`
	Expiry     Date            `json:"Expiry"`
	Boss       string          `json:"Boss"`
	Reward     string          `json:"Reward,omitempty"`
	Seed       int64           `json:"Seed,omitempty"`
	Variants   []SortieVariant `json:"Variants,omitempty"`
	Missions   []SortieVariant `json:"Missions,omitempty"`
}

// Mission is one active void fissure mission.
type Mission struct {
	ID          OID    `json:"_id"`
	Activation  Date   `json:"Activation"`
	Expiry      Date   `json:"Expiry"`
	Node        string `json:"Node"`
	MissionType string `json:"MissionType"`
	Modifier    string `json:"Modifier,omitempty"`
	Hard        bool   `json:"Hard,omitempty"`
}

// NewsMessage is one localized message of a news event.
type NewsMessage struct {
	LanguageCode string `json:"LanguageCode"`
	Message      string `json:"Message"`
}

// NewsEvent is one news entry (upstream calls these Events).
type NewsEvent struct {
	ID        OID           `json:"_id"`
	Messages  []NewsMessage `json:"Messages,omitempty"`
	Prop      string        `json:"Prop,omitempty"`
	ImageURL  string        `json:"ImageUrl,omitempty"`
	Priority  bool          `json:"Priority,omitempty"`
	Community bool          `json:"Community,omitempty"`
	Date      Date          `json:"Date"`
}

// Snapshot is the aggregate world-state document: every live entity in one
// JSON blob, keyed by entity kind.
type Snapshot struct {
	WorldSeed      string      `json:"WorldSeed,omitempty"`
	Time           int64       `json:"Time,omitempty"`
	Alerts         []Alert     `json:"Alerts,omitempty"`
	Goals          []Goal      `json:"Goals,omitempty"`
	Invasions      []Invasion  `json:"Invasions,omitempty"`
	Sorties        []Sortie    `json:"Sorties,omitempty"`
	LiteSorties    []Sortie    `json:"LiteSorties,omitempty"`
	ActiveMissions []Mission   `json:"ActiveMissions,omitempty"`
	Events         []NewsEvent `json:"Events,omitempty"`
}

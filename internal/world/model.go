// Package world defines the normalized game-world entity graph and its
// parse/serialize projections: rooms, items, their states, the conditions
// linking them, and scripted special responses. The graph is built once per
// parse and is read-only afterward.
package world

import "strconv"

// Identity is the id-or-name pair identifying an entity or reference.
// Parsing may populate both halves; projection prefers Name when present.
type Identity struct {
	// ID is the numeric identity, nil when none resolved. For entities in
	// ordered containers the effective id is the 0-based document position.
	ID *int
	// Name is the textual identity. Empty means none resolved.
	Name string
}

// HasID reports whether a numeric identity is present.
func (id Identity) HasID() bool { return id.ID != nil }

// String renders the preferred identity half: the name when present, else
// the numeric id, else the empty string.
func (id Identity) String() string {
	if id.Name != "" {
		return id.Name
	}
	if id.ID != nil {
		return strconv.Itoa(*id.ID)
	}
	return ""
}

// ItemRef identifies an item from a condition or special response.
type ItemRef struct {
	Identity
}

// StateRef identifies one state of a referenced item.
type StateRef struct {
	Identity
}

// RoomRef identifies an adjacent room.
type RoomRef struct {
	Identity
}

// Condition pairs an item with one of its states. Room states use conditions
// as prerequisites (gates); item states and special responses use them as
// actions (effects).
type Condition struct {
	Item  ItemRef
	State StateRef
}

// RoomState is one state of a room, gated by its prerequisites.
type RoomState struct {
	Identity    Identity
	Image       string
	Description string
	// Prerequisites must all hold for the room to be in this state.
	Prerequisites []Condition
}

// ItemState is one state of an item, with the effects of interacting with it.
type ItemState struct {
	Identity    Identity
	Image       string
	Description string
	// GetText is shown when the item is picked up in this state.
	GetText string
	// Gettable is nil when the source document does not say.
	Gettable *int
	// Actions are applied when the item is used in this state.
	Actions []Condition
}

// Item is an interactive object in a room.
type Item struct {
	Identity Identity
	States   []ItemState
}

// Room is a location in the world.
type Room struct {
	Identity      Identity
	AdjacentRooms []RoomRef
	States        []RoomState
	Items         []Item
}

// SpecialResponse is a scripted response to a command issued while a given
// item is in a given state. The item and state are referenced by positional
// id (itemindex/itemstate), never by name.
type SpecialResponse struct {
	Item      ItemRef
	ItemState StateRef
	Image     string
	Command   string
	Response  string
	Actions   []Condition
}

// World is the root aggregate of the entity graph.
type World struct {
	Rooms            []Room
	SpecialResponses []SpecialResponse
}

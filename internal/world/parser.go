package world

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/cjmaher/worldnorm/internal/resolve"
)

// Parse builds the World graph from a parsed document. The document is read
// in full; any required container missing from it is a structural error that
// aborts the whole parse with no partial result. Field-level lookups never
// fail: an absent or malformed field simply resolves as absent.
//
// Precondition: doc must have a root element.
// Postcondition: returns a complete World graph or a non-nil error.
func Parse(doc *etree.Document) (*World, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return parseWorld(root)
}

func parseWorld(root *etree.Element) (*World, error) {
	roomsEl, err := requireContainer(root, "rooms")
	if err != nil {
		return nil, err
	}
	responsesEl, err := requireContainer(root, "specialresponses")
	if err != nil {
		return nil, err
	}

	roomChildren := roomsEl.ChildElements()
	w := &World{Rooms: make([]Room, 0, len(roomChildren))}
	for i, el := range roomChildren {
		room, err := parseRoom(el)
		if err != nil {
			return nil, fmt.Errorf("parsing room %d (%s): %w", i, room.Identity.String(), err)
		}
		w.Rooms = append(w.Rooms, room)
	}

	responseChildren := responsesEl.ChildElements()
	w.SpecialResponses = make([]SpecialResponse, 0, len(responseChildren))
	for _, el := range responseChildren {
		w.SpecialResponses = append(w.SpecialResponses, parseSpecialResponse(el))
	}
	return w, nil
}

func parseRoom(el *etree.Element) (Room, error) {
	room := Room{Identity: parseIdentity(el, entityIDCandidates, entityNameCandidates)}

	adjEl, err := requireContainer(el, "adjacentrooms")
	if err != nil {
		return room, err
	}
	adjChildren := adjEl.ChildElements()
	room.AdjacentRooms = make([]RoomRef, 0, len(adjChildren))
	for _, child := range adjChildren {
		room.AdjacentRooms = append(room.AdjacentRooms, RoomRef{parseReference(child, "room")})
	}

	statesEl, err := requireContainer(el, "states")
	if err != nil {
		return room, err
	}
	stateChildren := statesEl.ChildElements()
	room.States = make([]RoomState, 0, len(stateChildren))
	for i, child := range stateChildren {
		room.States = append(room.States, parseRoomState(child, i))
	}

	itemsEl, err := requireContainer(el, "items")
	if err != nil {
		return room, err
	}
	itemChildren := itemsEl.ChildElements()
	room.Items = make([]Item, 0, len(itemChildren))
	for i, child := range itemChildren {
		item, err := parseItem(child, i)
		if err != nil {
			return room, fmt.Errorf("item %d (%s): %w", i, item.Identity.String(), err)
		}
		room.Items = append(room.Items, item)
	}
	return room, nil
}

// parseRoomState builds a room state from el. The state's position in its
// container is its authoritative id, whatever the document says.
func parseRoomState(el *etree.Element, pos int) RoomState {
	st := RoomState{Identity: parseIdentity(el, entityIDCandidates, entityNameCandidates)}
	st.Identity.ID = &pos

	if image, ok := resolve.First(el, resolve.Chain([]string{"image"}, resolve.Attr, resolve.ChildText)...); ok {
		st.Image = image
	}
	if desc, ok := resolve.ChildText("description")(el); ok {
		st.Description = desc
	}
	st.Prerequisites = parseConditions(el.SelectElement("prerequisites"))
	return st
}

func parseItem(el *etree.Element, pos int) (Item, error) {
	item := Item{Identity: parseIdentity(el, entityIDCandidates, entityNameCandidates)}
	// Unlike states, an item yields its id to the container position only
	// when the document resolved one in the first place.
	// TODO: decide whether items should adopt the unconditional positional
	// override states use; authored content currently relies on this shape.
	if item.Identity.ID != nil {
		item.Identity.ID = &pos
	}

	statesEl, err := requireContainer(el, "states")
	if err != nil {
		return item, err
	}
	stateChildren := statesEl.ChildElements()
	item.States = make([]ItemState, 0, len(stateChildren))
	for i, child := range stateChildren {
		item.States = append(item.States, parseItemState(child, i))
	}
	return item, nil
}

func parseItemState(el *etree.Element, pos int) ItemState {
	st := ItemState{Identity: parseIdentity(el, entityIDCandidates, entityNameCandidates)}
	st.Identity.ID = &pos

	if image, ok := resolve.First(el, resolve.Chain([]string{"image"}, resolve.Attr, resolve.ChildText)...); ok {
		st.Image = image
	}
	if desc, ok := resolve.ChildText("description")(el); ok {
		st.Description = desc
	}
	if get, ok := resolve.ChildText("get")(el); ok {
		st.GetText = get
	}
	if gettable, ok := resolve.Int(el, resolve.Chain([]string{"gettable"}, resolve.Attr, resolve.ChildText)...); ok {
		st.Gettable = &gettable
	}
	st.Actions = parseConditions(el.SelectElement("actions"))
	return st
}

// parseConditions maps every child of a prerequisites/actions container to a
// Condition. A nil container parses as no conditions; the serializer still
// emits the container so the round-tripped document keeps its shape.
func parseConditions(container *etree.Element) []Condition {
	if container == nil {
		return []Condition{}
	}
	children := container.ChildElements()
	conditions := make([]Condition, 0, len(children))
	for _, el := range children {
		conditions = append(conditions, parseCondition(el))
	}
	return conditions
}

// parseCondition resolves the item and state references of a single
// prerequisite or action. The state reference prefers the itemstate field
// over the legacy state field.
func parseCondition(el *etree.Element) Condition {
	return Condition{
		Item:  ItemRef{parseReference(el, "item")},
		State: StateRef{parseReference(el, "itemstate", "state")},
	}
}

// parseSpecialResponse builds a special response. Its item and state are
// referenced by positional integer id only; there is no name form.
func parseSpecialResponse(el *etree.Element) SpecialResponse {
	var sr SpecialResponse
	if id, ok := resolve.Int(el, resolve.ChildText("itemindex")); ok {
		sr.Item.ID = &id
	}
	if id, ok := resolve.Int(el, resolve.ChildText("itemstate")); ok {
		sr.ItemState.ID = &id
	}
	if image, ok := resolve.ChildText("image")(el); ok {
		sr.Image = image
	}
	if command, ok := resolve.ChildText("command")(el); ok {
		sr.Command = command
	}
	if response, ok := resolve.ChildText("response")(el); ok {
		sr.Response = response
	}
	sr.Actions = parseConditions(el.SelectElement("actions"))
	return sr
}

func requireContainer(el *etree.Element, name string) (*etree.Element, error) {
	container := el.SelectElement(name)
	if container == nil {
		return nil, fmt.Errorf("element <%s>: missing required <%s> container", el.Tag, name)
	}
	return container, nil
}

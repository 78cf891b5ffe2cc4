package world

import (
	"strconv"

	"github.com/beevik/etree"
)

// Serialize projects the World graph into a brand-new canonical document.
// It is a pure read-only projection: the graph is never mutated, and calling
// it twice on the same graph yields identical documents. Collection
// containers are always emitted, even when empty, so the output keeps the
// full document shape for round-tripping.
func Serialize(w *World) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	house := doc.CreateElement("house")

	rooms := house.CreateElement("rooms")
	for i := range w.Rooms {
		projectRoom(rooms.CreateElement("room"), &w.Rooms[i])
	}

	responses := house.CreateElement("specialresponses")
	for i := range w.SpecialResponses {
		projectSpecialResponse(responses.CreateElement("specialresponse"), &w.SpecialResponses[i])
	}
	return doc
}

func projectRoom(el *etree.Element, room *Room) {
	projectIdentity(el, room.Identity)

	adj := el.CreateElement("adjacentrooms")
	for _, ref := range room.AdjacentRooms {
		ref.project(adj.CreateElement("room"))
	}

	states := el.CreateElement("states")
	for i := range room.States {
		projectRoomState(states.CreateElement("state"), &room.States[i])
	}

	items := el.CreateElement("items")
	for i := range room.Items {
		projectItem(items.CreateElement("item"), &room.Items[i])
	}
}

func projectRoomState(el *etree.Element, st *RoomState) {
	projectIdentity(el, st.Identity)
	if st.Image != "" {
		el.CreateAttr("image", st.Image)
	}
	if st.Description != "" {
		el.CreateElement("description").SetText(st.Description)
	}
	projectConditions(el.CreateElement("prerequisites"), "prerequisite", st.Prerequisites)
}

func projectItem(el *etree.Element, item *Item) {
	projectIdentity(el, item.Identity)
	states := el.CreateElement("states")
	for i := range item.States {
		projectItemState(states.CreateElement("state"), &item.States[i])
	}
}

func projectItemState(el *etree.Element, st *ItemState) {
	projectIdentity(el, st.Identity)
	if st.Image != "" {
		el.CreateAttr("image", st.Image)
	}
	if st.Gettable != nil {
		el.CreateAttr("gettable", strconv.Itoa(*st.Gettable))
	}
	if st.Description != "" {
		el.CreateElement("description").SetText(st.Description)
	}
	if st.GetText != "" {
		el.CreateElement("get").SetText(st.GetText)
	}
	projectConditions(el.CreateElement("actions"), "action", st.Actions)
}

// projectConditions emits one child per condition under the given container.
// A single Condition shape serves two contexts: room-state prerequisites
// project as <prerequisite>, item-state and special-response effects as
// <action>.
func projectConditions(container *etree.Element, tag string, conditions []Condition) {
	for _, c := range conditions {
		el := container.CreateElement(tag)
		c.Item.project(el)
		c.State.project(el)
	}
}

func projectSpecialResponse(el *etree.Element, sr *SpecialResponse) {
	if sr.Item.ID != nil {
		el.CreateElement("itemindex").SetText(strconv.Itoa(*sr.Item.ID))
	}
	if sr.ItemState.ID != nil {
		el.CreateElement("itemstate").SetText(strconv.Itoa(*sr.ItemState.ID))
	}
	if sr.Image != "" {
		el.CreateElement("image").SetText(sr.Image)
	}
	if sr.Command != "" {
		el.CreateElement("command").SetText(sr.Command)
	}
	if sr.Response != "" {
		el.CreateElement("response").SetText(sr.Response)
	}
	projectConditions(el.CreateElement("actions"), "action", sr.Actions)
}

package world_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjmaher/worldnorm/internal/world"
)

// parseString parses a full world document from s.
func parseString(t require.TestingT, s string) *world.World {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(s))
	w, err := world.Parse(doc)
	require.NoError(t, err)
	return w
}

// wrapRooms embeds the given room markup in a minimal valid document.
func wrapRooms(rooms string) string {
	return `<house><rooms>` + rooms + `</rooms><specialresponses/></house>`
}

func TestParse_RoomScenario(t *testing.T) {
	w := parseString(t, wrapRooms(
		`<room id="2"><adjacentrooms/><states><state><description>D</description></state></states><items/></room>`,
	))
	require.Len(t, w.Rooms, 1)

	room := w.Rooms[0]
	require.NotNil(t, room.Identity.ID)
	assert.Equal(t, 2, *room.Identity.ID)
	assert.Empty(t, room.Identity.Name)

	require.Len(t, room.States, 1)
	require.NotNil(t, room.States[0].Identity.ID)
	assert.Equal(t, 0, *room.States[0].Identity.ID)
	assert.Equal(t, "D", room.States[0].Description)
	assert.Empty(t, room.Items)
}

func TestParse_AttributeBeatsElement(t *testing.T) {
	w := parseString(t, wrapRooms(
		`<room id="5"><id>7</id><adjacentrooms/><states/><items/></room>`,
	))
	require.NotNil(t, w.Rooms[0].Identity.ID)
	assert.Equal(t, 5, *w.Rooms[0].Identity.ID)
}

func TestParse_IndexFallbackForNonNumericID(t *testing.T) {
	w := parseString(t, wrapRooms(
		`<room id="attic" index="4" name="attic"><adjacentrooms/><states/><items/></room>`,
	))
	room := w.Rooms[0]
	require.NotNil(t, room.Identity.ID)
	assert.Equal(t, 4, *room.Identity.ID, "non-numeric id attribute falls through to index")
	assert.Equal(t, "attic", room.Identity.Name)
}

func TestParse_StatePositionalIndexing(t *testing.T) {
	w := parseString(t, wrapRooms(
		`<room name="hall"><adjacentrooms/><states><state/><state/><state/></states><items/></room>`,
	))
	states := w.Rooms[0].States
	require.Len(t, states, 3)
	for i, st := range states {
		require.NotNil(t, st.Identity.ID)
		assert.Equal(t, i, *st.Identity.ID)
	}
}

func TestParse_StatePositionOverridesDocumentID(t *testing.T) {
	w := parseString(t, wrapRooms(
		`<room name="hall"><adjacentrooms/><states><state id="9"/></states><items/></room>`,
	))
	require.NotNil(t, w.Rooms[0].States[0].Identity.ID)
	assert.Equal(t, 0, *w.Rooms[0].States[0].Identity.ID,
		"the container position is the authoritative state id")
}

func TestParse_ItemOverridesOnlyResolvedID(t *testing.T) {
	w := parseString(t, wrapRooms(
		`<room name="hall"><adjacentrooms/><states/><items>`+
			`<item name="lamp"><states/></item>`+
			`<item id="9" name="key"><states/></item>`+
			`</items></room>`,
	))
	items := w.Rooms[0].Items
	require.Len(t, items, 2)

	assert.Nil(t, items[0].Identity.ID, "an item with no resolved id keeps none")
	require.NotNil(t, items[1].Identity.ID)
	assert.Equal(t, 1, *items[1].Identity.ID, "a resolved item id yields to the container position")
}

func TestParse_ItemStateFields(t *testing.T) {
	w := parseString(t, wrapRooms(
		`<room name="hall"><adjacentrooms/><states/><items>`+
			`<item name="lamp"><states>`+
			`<state name="lit" image="lamp.png" gettable="1">`+
			`<description>A lit lamp.</description>`+
			`<get>You take the lamp.</get>`+
			`<actions><action item="lamp" itemstate="0"/></actions>`+
			`</state>`+
			`</states></item>`+
			`</items></room>`,
	))
	st := w.Rooms[0].Items[0].States[0]
	require.NotNil(t, st.Identity.ID)
	assert.Equal(t, 0, *st.Identity.ID)
	assert.Equal(t, "lit", st.Identity.Name)
	assert.Equal(t, "lamp.png", st.Image)
	assert.Equal(t, "A lit lamp.", st.Description)
	assert.Equal(t, "You take the lamp.", st.GetText)
	require.NotNil(t, st.Gettable)
	assert.Equal(t, 1, *st.Gettable)

	require.Len(t, st.Actions, 1)
	action := st.Actions[0]
	assert.Equal(t, "lamp", action.Item.Name)
	assert.Nil(t, action.Item.ID)
	require.NotNil(t, action.State.ID)
	assert.Equal(t, 0, *action.State.ID)
	assert.Equal(t, "0", action.State.Name, "a numeric reference populates both halves")
}

func TestParse_ConditionStateCandidatePriority(t *testing.T) {
	w := parseString(t, wrapRooms(
		`<room name="hall"><adjacentrooms/><states>`+
			`<state><prerequisites>`+
			`<prerequisite item="door" state="open"><itemstate>2</itemstate></prerequisite>`+
			`</prerequisites></state>`+
			`</states><items/></room>`,
	))
	cond := w.Rooms[0].States[0].Prerequisites[0]
	assert.Equal(t, "2", cond.State.Name, "itemstate element outranks state attribute")
	require.NotNil(t, cond.State.ID)
	assert.Equal(t, 2, *cond.State.ID)
}

func TestParse_ConditionLegacyStateField(t *testing.T) {
	w := parseString(t, wrapRooms(
		`<room name="hall"><adjacentrooms/><states>`+
			`<state><prerequisites><prerequisite item="door" state="open"/></prerequisites></state>`+
			`</states><items/></room>`,
	))
	cond := w.Rooms[0].States[0].Prerequisites[0]
	assert.Equal(t, "open", cond.State.Name)
	assert.Nil(t, cond.State.ID)
}

func TestParse_MissingConditionContainersAreEmpty(t *testing.T) {
	w := parseString(t, wrapRooms(
		`<room name="hall"><adjacentrooms/><states><state/></states><items>`+
			`<item name="lamp"><states><state/></states></item>`+
			`</items></room>`,
	))
	assert.Empty(t, w.Rooms[0].States[0].Prerequisites)
	assert.Empty(t, w.Rooms[0].Items[0].States[0].Actions)
}

func TestParse_AdjacentRoomReferences(t *testing.T) {
	w := parseString(t, wrapRooms(
		`<room name="hall"><adjacentrooms>`+
			`<room room="kitchen"/><room room="3"/>`+
			`</adjacentrooms><states/><items/></room>`,
	))
	adj := w.Rooms[0].AdjacentRooms
	require.Len(t, adj, 2)

	assert.Equal(t, "kitchen", adj[0].Name)
	assert.Nil(t, adj[0].ID)

	assert.Equal(t, "3", adj[1].Name)
	require.NotNil(t, adj[1].ID)
	assert.Equal(t, 3, *adj[1].ID)
}

func TestParse_SpecialResponseScenario(t *testing.T) {
	w := parseString(t,
		`<house><rooms/><specialresponses>`+
			`<specialresponse>`+
			`<itemindex>3</itemindex><itemstate>1</itemstate>`+
			`<image>door.png</image><command>open door</command><response>It creaks open.</response>`+
			`<actions><action item="door" itemstate="1"/></actions>`+
			`</specialresponse>`+
			`</specialresponses></house>`,
	)
	require.Len(t, w.SpecialResponses, 1)
	sr := w.SpecialResponses[0]

	require.NotNil(t, sr.Item.ID)
	assert.Equal(t, 3, *sr.Item.ID)
	assert.Empty(t, sr.Item.Name)

	require.NotNil(t, sr.ItemState.ID)
	assert.Equal(t, 1, *sr.ItemState.ID)

	assert.Equal(t, "door.png", sr.Image)
	assert.Equal(t, "open door", sr.Command)
	assert.Equal(t, "It creaks open.", sr.Response)
	require.Len(t, sr.Actions, 1)
}

func TestParse_MissingRequiredContainersFatal(t *testing.T) {
	cases := map[string]string{
		"rooms":            `<house><specialresponses/></house>`,
		"specialresponses": `<house><rooms/></house>`,
		"adjacentrooms":    wrapRooms(`<room name="hall"><states/><items/></room>`),
		"room states":      wrapRooms(`<room name="hall"><adjacentrooms/><items/></room>`),
		"items":            wrapRooms(`<room name="hall"><adjacentrooms/><states/></room>`),
		"item states":      wrapRooms(`<room name="hall"><adjacentrooms/><states/><items><item name="lamp"/></items></room>`),
	}
	for name, docStr := range cases {
		t.Run(name, func(t *testing.T) {
			doc := etree.NewDocument()
			require.NoError(t, doc.ReadFromString(docStr))
			_, err := world.Parse(doc)
			assert.Error(t, err, "missing %s container must abort the parse", name)
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	doc := etree.NewDocument()
	_, err := world.Parse(doc)
	assert.Error(t, err)
}

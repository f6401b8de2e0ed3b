package reader

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/biblereader/internal/entities"
)

type set map[uint]struct{}

func (s set) Contains(id uint) bool {
	_, ok := s[id]
	return ok
}

func strPtr(s string) *string { return &s }

func verses(numbers ...int) []entities.Verse {
	out := make([]entities.Verse, len(numbers))
	for i, n := range numbers {
		out[i] = entities.Verse{ID: uint(100 + n), ChapterID: 1, Number: n}
	}
	return out
}

func translation(verseNumber int, text string) entities.Translation {
	return entities.Translation{VerseID: uint(100 + verseNumber), LanguageID: 1, Text: text}
}

func verseNumbers(items []DisplayItem) []int {
	var numbers []int
	for _, item := range items {
		if v, ok := item.(VerseItem); ok {
			numbers = append(numbers, v.Number)
		}
	}
	return numbers
}

func TestBuildDisplay_SelahScenario(t *testing.T) {
	items := BuildDisplay(
		verses(1, 2, 3),
		[]entities.Translation{
			translation(1, "In the beginning..."),
			translation(2, "And the earth..."),
		},
		[]entities.Heading{{ID: 7, ChapterID: 1, Order: 2, Text: "Selah"}},
		set{},
		nil,
	)

	expected := []DisplayItem{
		VerseItem{ID: 101, Number: 1, Text: "In the beginning..."},
		HeadingItem{ID: 7, Text: "Selah"},
		VerseItem{ID: 102, Number: 2, Text: "And the earth..."},
		VerseItem{ID: 103, Number: 3, Text: "[Translation missing]"},
	}
	assert.Equal(t, expected, items)
}

func TestBuildDisplay_EmptyInputs(t *testing.T) {
	assert.Empty(t, BuildDisplay(nil, []entities.Translation{translation(1, "x")}, nil, nil, nil))
	assert.Empty(t, BuildDisplay(verses(1, 2), nil, nil, nil, nil))
	assert.NotNil(t, BuildDisplay(nil, nil, nil, nil, nil))
}

func TestBuildDisplay_EveryVerseOnceInOrder(t *testing.T) {
	items := BuildDisplay(
		verses(5, 1, 4, 2, 3),
		[]entities.Translation{translation(3, "three")},
		nil, nil, nil,
	)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, verseNumbers(items))
	for _, item := range items {
		assert.Equal(t, KindVerse, item.Kind())
	}
}

func TestBuildDisplay_HeadingPlacement(t *testing.T) {
	items := BuildDisplay(
		verses(1, 2, 3),
		[]entities.Translation{translation(1, "one"), translation(2, "two"), translation(3, "three")},
		[]entities.Heading{
			{ID: 30, Order: 3, Text: "Third"},
			{ID: 12, Order: 1, Text: "Second at one"},
			{ID: 11, Order: 1, Text: "First at one"},
			{ID: 90, Order: 9, Text: "Dangling"},
		},
		nil, nil,
	)

	require.Len(t, items, 6)
	assert.Equal(t, HeadingItem{ID: 11, Text: "First at one"}, items[0])
	assert.Equal(t, HeadingItem{ID: 12, Text: "Second at one"}, items[1])
	assert.Equal(t, 1, items[2].(VerseItem).Number)
	assert.Equal(t, 2, items[3].(VerseItem).Number)
	assert.Equal(t, HeadingItem{ID: 30, Text: "Third"}, items[4])
	assert.Equal(t, 3, items[5].(VerseItem).Number)

	for _, item := range items {
		if h, ok := item.(HeadingItem); ok {
			assert.NotEqual(t, "Dangling", h.Text)
		}
	}
}

func TestBuildDisplay_AnnotationOverlay(t *testing.T) {
	items := BuildDisplay(
		verses(1, 2, 3),
		[]entities.Translation{translation(1, "one"), translation(2, "two"), translation(3, "three")},
		nil,
		set{101: {}, 103: {}},
		map[uint]entities.Highlight{
			102: {VerseID: 102, ColorHex: strPtr("#FF0000")},
			103: {VerseID: 103},
		},
	)

	require.Len(t, items, 3)
	one, two, three := items[0].(VerseItem), items[1].(VerseItem), items[2].(VerseItem)

	assert.True(t, one.IsBookmarked)
	assert.False(t, one.IsHighlighted)
	assert.Nil(t, one.Color)

	assert.False(t, two.IsBookmarked)
	assert.True(t, two.IsHighlighted)
	require.NotNil(t, two.Color)
	assert.Equal(t, "#FF0000", *two.Color)

	assert.True(t, three.IsBookmarked)
	assert.True(t, three.IsHighlighted)
	assert.Nil(t, three.Color)
}

func TestBuildDisplay_DoesNotMutateInputs(t *testing.T) {
	input := verses(3, 1, 2)
	BuildDisplay(input, []entities.Translation{translation(1, "one")}, nil, nil, nil)
	assert.Equal(t, 3, input[0].Number)
}

func TestDisplayItem_JSONCarriesKind(t *testing.T) {
	data, err := json.Marshal([]DisplayItem{
		HeadingItem{ID: 1, Text: "Selah"},
		VerseItem{ID: 2, Number: 1, Text: "one", IsHighlighted: true, Color: strPtr("#00FF00")},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"kind": "heading", "id": 1, "text": "Selah"},
		{"kind": "verse", "id": 2, "number": 1, "text": "one", "is_bookmarked": false, "is_highlighted": true, "color": "#00FF00"}
	]`, string(data))
}

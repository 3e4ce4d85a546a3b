package deck

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDeck(t *testing.T) {
	d := Sample()
	require.Equal(t, 10, d.Len())
	assert.Equal(t, "Ecce Homo: Capstone Presentation", d.Footer())

	seen := make(map[Variant]bool)
	for i, s := range d.Slides() {
		assert.Equal(t, i+1, s.ID, "ids run 1..10 in order")
		seen[s.Variant] = true
	}
	for _, v := range Variants {
		assert.True(t, seen[v], "sample deck is missing %s", v)
	}
	assert.Equal(t, Conclusion, d.At(9).Variant)
}

func TestParseListShorthand(t *testing.T) {
	d := Sample()

	cards, ok := d.At(3).Content.(CardsContent)
	require.True(t, ok)
	want := Card{Title: "具身认知", Caption: "Embodied Cognition", Icon: "brain",
		Description: "将抽象哲学转化为物理痛感。推巨石 = 永恒轮回的重负；攀爬高塔 = 信仰的渴望。"}
	if diff := cmp.Diff(want, cards.Cards[0]); diff != "" {
		t.Errorf("first card mismatch (-want +got):\n%s", diff)
	}

	script, ok := d.At(8).Content.(ScriptContent)
	require.True(t, ok)
	require.Len(t, script.Rows, 3)
	assert.Equal(t, "02:15", script.Rows[2].Time)
	assert.Equal(t, DefaultScriptColumns, script.Headers())
}

func TestParseKeyedLists(t *testing.T) {
	src := `
title: keyed
slides:
  - id: 1
    type: SCRIPT_TABLE
    title: Script
    content:
      columns: ["Audio", "", "Voice"]
      rows:
        - time: "00:10"
          reality: a
`
	d, err := Parse([]byte(src))
	require.NoError(t, err)
	script := d.At(0).Content.(ScriptContent)
	assert.Equal(t, [3]string{"Audio", DefaultScriptColumns[1], "Voice"}, script.Headers())
}

func TestParsePartialScriptColumns(t *testing.T) {
	src := `
title: partial
slides:
  - id: 1
    type: SCRIPT_TABLE
    title: Script
    content:
      columns: ["Audio", "Visual"]
      rows:
        - time: "00:10"
`
	d, err := Parse([]byte(src))
	require.NoError(t, err)
	script := d.At(0).Content.(ScriptContent)
	assert.Equal(t, [3]string{"Audio", "Visual", DefaultScriptColumns[2]}, script.Headers())
	assert.Equal(t, DefaultScriptColumns, ScriptContent{}.Headers())
}

func TestUnknownVariantFallsBackToCards(t *testing.T) {
	src := `
slides:
  - id: 1
    type: BULLET_POINTS
    title: Points
    content:
      - title: one
`
	d, err := Parse([]byte(src))
	require.NoError(t, err)
	s := d.At(0)
	assert.False(t, s.Variant.Known())
	_, ok := s.Content.(CardsContent)
	assert.True(t, ok, "unknown variants carry a cards payload")

	_, err = Parse([]byte(src), Strict())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.SlideID)
	assert.Equal(t, "type", verr.Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		slides  []Slide
		wantErr string
	}{
		{
			name:    "empty deck",
			slides:  nil,
			wantErr: ErrEmptyDeck.Error(),
		},
		{
			name: "duplicate id",
			slides: []Slide{
				{ID: 1, Variant: Conclusion, Title: "a", Content: ConclusionContent{Metaphor: "m"}},
				{ID: 1, Variant: Conclusion, Title: "b", Content: ConclusionContent{Metaphor: "m"}},
			},
			wantErr: "slide 1: id: duplicate",
		},
		{
			name:    "missing title",
			slides:  []Slide{{ID: 2, Variant: Title, Content: TitleContent{}}},
			wantErr: "slide 2: title: required",
		},
		{
			name:    "payload mismatch",
			slides:  []Slide{{ID: 3, Variant: Cards, Title: "c", Content: TitleContent{}}},
			wantErr: "slide 3: content: TITLE payload does not match variant CARDS",
		},
		{
			name:    "nil payload",
			slides:  []Slide{{ID: 4, Variant: Diagram, Title: "d"}},
			wantErr: "slide 4: content: required",
		},
		{
			name:    "empty cards",
			slides:  []Slide{{ID: 5, Variant: Cards, Title: "e", Content: CardsContent{}}},
			wantErr: "slide 5: content.cards: at least one card required",
		},
		{
			name: "script row without time",
			slides: []Slide{{ID: 6, Variant: ScriptTable, Title: "f",
				Content: ScriptContent{Rows: []ScriptRow{{Reality: "x"}}}}},
			wantErr: "slide 6: content.rows[0].time: required",
		},
		{
			name: "too many script columns",
			slides: []Slide{{ID: 7, Variant: ScriptTable, Title: "g",
				Content: ScriptContent{Columns: []string{"a", "b", "c", "d"}, Rows: []ScriptRow{{Time: "00:00"}}}}},
			wantErr: "slide 7: content.columns: at most 3 headers, got 4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.slides)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsEverySlide(t *testing.T) {
	err := Validate([]Slide{
		{ID: 1, Variant: Title, Content: TitleContent{}},
		{ID: 2, Variant: Conclusion, Title: "c", Content: ConclusionContent{}},
	})
	require.Error(t, err)
	var ids []int
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var verr *ValidationError
		if errors.As(e, &verr) {
			ids = append(ids, verr.SlideID)
		}
	}
	assert.Equal(t, []int{1, 2}, ids)
}

func TestDeckIsIsolatedFromCaller(t *testing.T) {
	slides := []Slide{{ID: 1, Variant: Conclusion, Title: "end", Content: ConclusionContent{Metaphor: "m"}}}
	d, err := New("t", "", slides)
	require.NoError(t, err)

	slides[0].Title = "changed"
	out := d.Slides()
	out[0].Title = "changed again"
	assert.Equal(t, "end", d.At(0).Title)
	assert.Equal(t, 0, d.Index(1))
	assert.Equal(t, -1, d.Index(42))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, SampleYAML(), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Sample().Len(), d.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "deck: read"))
}

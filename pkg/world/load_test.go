package world

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDefinition() Definition {
	return Definition{
		Name:      "Test Game",
		StartRoom: 1,
		Rooms: []Room{
			{
				ID:   1,
				Name: "Start",
				Passages: []Passage{
					{Direction: North, To: 2},
				},
			},
			{
				ID:   2,
				Name: "End",
				Passages: []Passage{
					{Direction: South, To: 1},
				},
			},
		},
		Objects: []Object{
			{Name: "LAMP", Description: "a lamp", Room: 1},
		},
	}
}

func TestLoadFile(t *testing.T) {
	for _, ext := range []string{"json", "yaml"} {
		t.Run(ext, func(t *testing.T) {
			w, err := LoadFile(filepath.Join("testdata", "cave."+ext))
			require.NoError(t, err)

			assert.Equal(t, "Cave", w.Name)
			assert.Equal(t, 1, w.StartRoom)
			assert.Equal(t, 3, w.RoomCount())

			r, err := w.RoomByID(3)
			require.NoError(t, err)
			fp, ok := r.ForcedPassage()
			require.True(t, ok)
			assert.Equal(t, TerminalRoom, fp.To)

			_, ok = w.Object("lamp")
			assert.True(t, ok)
		})
	}
}

func TestLoadFileUnsupportedFormat(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "cave.toml"))
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "nope.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(d *Definition) {},
		},
		{
			name:    "missing name",
			mutate:  func(d *Definition) { d.Name = "" },
			wantErr: "game name is required",
		},
		{
			name: "reserved room id",
			mutate: func(d *Definition) {
				d.Rooms = append(d.Rooms, Room{ID: 0, Name: "Void"})
			},
			wantErr: "reserved",
		},
		{
			name: "duplicate room id",
			mutate: func(d *Definition) {
				d.Rooms = append(d.Rooms, Room{ID: 1, Name: "Again"})
			},
			wantErr: "duplicate room id 1",
		},
		{
			name:    "missing start room",
			mutate:  func(d *Definition) { d.StartRoom = 99 },
			wantErr: "start room 99 does not exist",
		},
		{
			name:    "no rooms",
			mutate:  func(d *Definition) { d.Rooms = nil },
			wantErr: "at least one room is required",
		},
		{
			name: "duplicate object name differs only by case",
			mutate: func(d *Definition) {
				d.Objects = append(d.Objects, Object{Name: "lamp", Room: 1})
			},
			wantErr: "duplicate object name",
		},
		{
			name: "object in unknown room",
			mutate: func(d *Definition) {
				d.Objects[0].Room = 42
			},
			wantErr: "unknown room 42",
		},
		{
			name: "forced passage not first",
			mutate: func(d *Definition) {
				d.Rooms[0].Passages = append(d.Rooms[0].Passages,
					Passage{Direction: Forced, To: 2, Forced: true})
			},
			wantErr: "forced passage must be first",
		},
		{
			name: "forced passage with wrong direction",
			mutate: func(d *Definition) {
				d.Rooms[1].Passages = []Passage{
					{Direction: North, To: 1, Forced: true},
				}
			},
			wantErr: "forced passage must use direction FORCED",
		},
		{
			name: "two forced passages",
			mutate: func(d *Definition) {
				d.Rooms[1].Passages = []Passage{
					{Direction: Forced, To: 1, Forced: true},
					{Direction: Forced, To: 1, Forced: true},
				}
			},
			wantErr: "at most one forced passage",
		},
		{
			name: "unknown direction",
			mutate: func(d *Definition) {
				d.Rooms[0].Passages[0].Direction = "SIDEWAYS"
			},
			wantErr: `unknown direction "SIDEWAYS"`,
		},
		{
			name: "terminal destination on normal passage",
			mutate: func(d *Definition) {
				d.Rooms[0].Passages[0].To = 0
			},
			wantErr: "only legal on a forced passage",
		},
		{
			name: "unknown destination",
			mutate: func(d *Definition) {
				d.Rooms[0].Passages[0].To = 77
			},
			wantErr: "unknown destination 77",
		},
		{
			name: "requires unknown object",
			mutate: func(d *Definition) {
				d.Rooms[0].Passages[0].Requires = "SWORD"
			},
			wantErr: "requires unknown object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.mutate(&def)
			err := def.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewCanonicalizesDirections(t *testing.T) {
	def := validDefinition()
	def.Rooms[0].Passages = []Passage{
		{Direction: "north", To: 2},
	}
	def.Rooms[1].Passages = []Passage{
		{Direction: "s", To: 1},
	}

	w, err := New(def)
	require.NoError(t, err)

	start, err := w.RoomByID(1)
	require.NoError(t, err)
	p, ok := start.PassageTo(North)
	require.True(t, ok, "passage authored as %q must be walkable via NORTH", "north")
	assert.Equal(t, 2, p.To)
	assert.Equal(t, []Direction{North}, start.Directions())

	end, err := w.RoomByID(2)
	require.NoError(t, err)
	_, ok = end.PassageTo(South)
	require.True(t, ok, "passage authored as %q must be walkable via SOUTH", "s")
	assert.Equal(t, []Direction{South}, end.Directions())
}

func TestValidateAggregatesErrors(t *testing.T) {
	def := validDefinition()
	def.Name = ""
	def.StartRoom = 99
	def.Objects[0].Room = 42

	err := def.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game name is required")
	assert.Contains(t, err.Error(), "start room 99")
	assert.Contains(t, err.Error(), "unknown room 42")
}

// Package world maintains the bot's picture of the map between ticks:
// a tile grid derived from snapshots, remembered entities under fog of
// war, per-tick tile locks for planned moves and builds, and a ledger
// for resource and population reservations.
package world

import (
	"sort"

	"github.com/yourusername/rtsengine/internal/geom"
	"github.com/yourusername/rtsengine/pkg/game"
)

// Tile sentinel values. Positive values are entity IDs.
const (
	TileUnknown = -1
	TileEmpty   = 0
)

// World is the accumulated game state. Update it once per tick with
// the fresh snapshot before reading anything.
type World struct {
	mapSize     int
	myID        int
	currentTick int
	fogOfWar    bool

	props    game.PropertyTable
	players  map[int]game.Player
	entities map[int]game.Entity
	tiles    []int
	locked   []bool
	visible  []bool
}

// New returns an empty world; it becomes usable after the first Update.
func New() *World {
	return &World{
		players:  make(map[int]game.Player),
		entities: make(map[int]game.Entity),
	}
}

// Update merges a snapshot into the world. Without fog of war the
// snapshot is authoritative and replaces everything. With fog, tiles
// inside some friendly sight range are refreshed and everything else
// keeps its last known contents.
func (w *World) Update(view *game.PlayerView) {
	if w.mapSize != view.MapSize {
		w.mapSize = view.MapSize
		w.tiles = make([]int, w.mapSize*w.mapSize)
		w.locked = make([]bool, w.mapSize*w.mapSize)
		w.visible = make([]bool, w.mapSize*w.mapSize)
		for i := range w.tiles {
			w.tiles[i] = TileUnknown
		}
	}
	w.myID = view.MyID
	w.currentTick = view.CurrentTick
	w.fogOfWar = view.FogOfWar
	if view.Properties != nil {
		w.props = view.Properties
	} else if w.props == nil {
		w.props = game.StandardProperties()
	}

	for _, p := range view.Players {
		w.players[p.ID] = p
	}

	for i := range w.locked {
		w.locked[i] = false
	}

	if !view.FogOfWar {
		w.entities = make(map[int]game.Entity, len(view.Entities))
		for i := range w.tiles {
			w.tiles[i] = TileEmpty
		}
	} else {
		w.markVisible(view)
		w.forgetSeenTiles()
	}
	for _, e := range view.Entities {
		if old, ok := w.entities[e.ID]; ok && old.Position != e.Position {
			w.clearEntity(&old)
		}
		w.entities[e.ID] = e
		w.placeEntity(&e)
	}
}

func (w *World) markVisible(view *game.PlayerView) {
	for i := range w.visible {
		w.visible[i] = false
	}
	for _, e := range view.Entities {
		if e.PlayerID != view.MyID {
			continue
		}
		p := w.props[e.Type]
		geom.VisitRange(e.Position, p.Size, p.SightRange, w.Bounds(), func(pos geom.Vec2) {
			w.visible[w.index(pos)] = true
		})
	}
}

// forgetSeenTiles drops remembered entities whose footprint is now in
// sight; those still present will be re-added from the snapshot.
func (w *World) forgetSeenTiles() {
	for id, e := range w.entities {
		seen := false
		e.Bounds(w.props).Visit(func(pos geom.Vec2) {
			if w.visible[w.index(pos)] {
				seen = true
			}
		})
		if seen {
			w.clearEntity(&e)
			delete(w.entities, id)
		}
	}
	for i, v := range w.visible {
		if v && w.tiles[i] == TileUnknown {
			w.tiles[i] = TileEmpty
		}
	}
}

func (w *World) placeEntity(e *game.Entity) {
	e.Bounds(w.props).Visit(func(pos geom.Vec2) {
		w.tiles[w.index(pos)] = e.ID
	})
}

func (w *World) clearEntity(e *game.Entity) {
	e.Bounds(w.props).Visit(func(pos geom.Vec2) {
		if w.tiles[w.index(pos)] == e.ID {
			w.tiles[w.index(pos)] = TileEmpty
		}
	})
}

// Size returns the map edge length.
func (w *World) Size() int { return w.mapSize }

// Bounds returns the map rectangle.
func (w *World) Bounds() geom.Rect {
	return geom.NewRect(geom.New(0, 0), geom.Both(w.mapSize))
}

// MyID returns this bot's player ID.
func (w *World) MyID() int { return w.myID }

// CurrentTick returns the tick of the last snapshot.
func (w *World) CurrentTick() int { return w.currentTick }

// Me returns this bot's player record.
func (w *World) Me() game.Player { return w.players[w.myID] }

// Player returns a player record by ID.
func (w *World) Player(id int) (game.Player, bool) {
	p, ok := w.players[id]
	return p, ok
}

// Players returns all known player records in ID order.
func (w *World) Players() []game.Player {
	out := make([]game.Player, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Properties returns the active property table.
func (w *World) Properties() game.PropertyTable { return w.props }

// Entity returns a known entity by ID.
func (w *World) Entity(id int) (game.Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// entityIDs returns all known entity IDs in ascending order. Iteration
// order must be stable so that downstream planning stays deterministic.
func (w *World) entityIDs() []int {
	ids := make([]int, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// VisitEntities calls fn for every known entity in ID order.
func (w *World) VisitEntities(fn func(e *game.Entity)) {
	for _, id := range w.entityIDs() {
		e := w.entities[id]
		fn(&e)
	}
}

// MyEntities returns this bot's entities of the given types, or all of
// them when no type is given, in ID order.
func (w *World) MyEntities(types ...game.EntityType) []game.Entity {
	var out []game.Entity
	for _, id := range w.entityIDs() {
		e := w.entities[id]
		if e.PlayerID != w.myID {
			continue
		}
		if len(types) == 0 {
			out = append(out, e)
			continue
		}
		for _, t := range types {
			if e.Type == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// OpponentEntities returns every known hostile entity in ID order.
func (w *World) OpponentEntities() []game.Entity {
	var out []game.Entity
	for _, id := range w.entityIDs() {
		e := w.entities[id]
		if e.PlayerID != game.NoPlayer && e.PlayerID != w.myID {
			out = append(out, e)
		}
	}
	return out
}

// Resources returns every known resource patch in ID order.
func (w *World) Resources() []game.Entity {
	var out []game.Entity
	for _, id := range w.entityIDs() {
		e := w.entities[id]
		if e.Type == game.Resource {
			out = append(out, e)
		}
	}
	return out
}

// Population returns this bot's provided and used population. Only
// active buildings provide.
func (w *World) Population() (provide, use int) {
	for _, e := range w.entities {
		if e.PlayerID != w.myID {
			continue
		}
		p := w.props[e.Type]
		if e.Active {
			provide += p.PopulationProvide
		}
		use += p.PopulationUse
	}
	return provide, use
}

func (w *World) index(pos geom.Vec2) int {
	return geom.PositionToIndex(pos, w.mapSize)
}

// Tile returns the tile content at pos: TileUnknown, TileEmpty, or an
// entity ID. Positions off the map report TileUnknown.
func (w *World) Tile(pos geom.Vec2) int {
	if !w.Bounds().Contains(pos) {
		return TileUnknown
	}
	return w.tiles[w.index(pos)]
}

// IsFree reports whether pos is known empty and not locked.
func (w *World) IsFree(pos geom.Vec2) bool {
	return w.Tile(pos) == TileEmpty && !w.IsLocked(pos)
}

// IsPassable reports whether a unit could stand at pos: known empty,
// or occupied by a mobile unit that may step away.
func (w *World) IsPassable(pos geom.Vec2) bool {
	t := w.Tile(pos)
	if t == TileEmpty {
		return true
	}
	if t == TileUnknown {
		return false
	}
	e, ok := w.entities[t]
	return ok && w.props[e.Type].CanMove
}

// Lock marks pos as claimed for this tick.
func (w *World) Lock(pos geom.Vec2) {
	if w.Bounds().Contains(pos) {
		w.locked[w.index(pos)] = true
	}
}

// LockSquare claims a size-sided square at pos.
func (w *World) LockSquare(pos geom.Vec2, size int) {
	geom.VisitSquareInBounds(pos, size, w.Bounds(), func(p geom.Vec2) {
		w.locked[w.index(p)] = true
	})
}

// IsLocked reports whether pos was claimed this tick.
func (w *World) IsLocked(pos geom.Vec2) bool {
	return w.Bounds().Contains(pos) && w.locked[w.index(pos)]
}

// IsFreeSquare reports whether the whole size-sided square at pos is
// on the map, known empty and unlocked.
func (w *World) IsFreeSquare(pos geom.Vec2, size int) bool {
	sq := geom.Square(pos, size)
	if !w.Bounds().Contains(pos) || !w.Bounds().Contains(sq.Max.Sub(geom.Both(1))) {
		return false
	}
	free := true
	sq.Visit(func(p geom.Vec2) {
		if !w.IsFree(p) {
			free = false
		}
	})
	return free
}

// FindFreeSquare searches outward from near for the closest free
// size-sided square, scanning rings up to maxRadius cells out.
func (w *World) FindFreeSquare(near geom.Vec2, size, maxRadius int) (geom.Vec2, bool) {
	if w.IsFreeSquare(near, size) {
		return near, true
	}
	for r := 1; r <= maxRadius; r++ {
		ring := geom.Square(near.Sub(geom.Both(r)), size+2*r)
		if pos, ok := geom.FindOnRectBorder(ring.Min, ring.Max, func(p geom.Vec2) bool {
			return w.IsFreeSquare(p, size)
		}); ok {
			return pos, true
		}
	}
	return geom.Vec2{}, false
}

// ProtectedRadius returns the radius of the home zone: the largest
// distance from the map corner nearest my first base to any of my
// buildings, plus their sight. Zero when there are no buildings.
func (w *World) ProtectedRadius() int {
	origin := w.homeCorner()
	radius := 0
	for _, e := range w.entities {
		if e.PlayerID != w.myID || w.props[e.Type].CanMove {
			continue
		}
		p := w.props[e.Type]
		d := e.Bounds(w.props).DistanceToPosition(origin) + p.Size + p.SightRange
		if d > radius {
			radius = d
		}
	}
	return radius
}

// Protected reports whether pos lies inside the home zone.
func (w *World) Protected(pos geom.Vec2) bool {
	return pos.Distance(w.homeCorner()) <= w.ProtectedRadius()
}

// HomeCorner returns the map corner this bot's buildings cluster
// around.
func (w *World) HomeCorner() geom.Vec2 {
	return w.homeCorner()
}

func (w *World) homeCorner() geom.Vec2 {
	corner := geom.New(0, 0)
	best := -1
	for _, c := range []geom.Vec2{
		{X: 0, Y: 0},
		{X: w.mapSize - 1, Y: 0},
		{X: 0, Y: w.mapSize - 1},
		{X: w.mapSize - 1, Y: w.mapSize - 1},
	} {
		total := 0
		n := 0
		for _, e := range w.entities {
			if e.PlayerID != w.myID || w.props[e.Type].CanMove {
				continue
			}
			total += e.Position.Distance(c)
			n++
		}
		if n == 0 {
			return corner
		}
		if best < 0 || total < best {
			best = total
			corner = c
		}
	}
	return corner
}

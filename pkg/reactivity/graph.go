package reactivity

import "sync"

// cellID is a stable handle for one tracked (target, key) pair, or for the
// private dependency set of a ref or computed.
type cellID int32

// depSet is the subscriber set of a cell. index maps an effect to its slot
// in subs so removal does not search.
type depSet struct {
	subs  []*ReactiveEffect
	index map[*ReactiveEffect]int
}

// graph is the arena of dependency cells.
//
// Targets are registered by the identity of their backing map; each tracked
// key of a target owns a cellID that indexes the subscriber table. Cells are
// created lazily on first tracked access. Stop removes an effect from the
// cells it joined by ID. When the target, ref or computed owning a cell is
// collected, the cell goes back to the free list.
type graph struct {
	mu    sync.Mutex
	cells []depSet
	free  []cellID
}

var deps = &graph{}

// newCell allocates a cell, reusing a released one when possible, and
// returns its handle.
func (g *graph) newCell() cellID {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n := len(g.free); n > 0 {
		id := g.free[n-1]
		g.free = g.free[:n-1]
		return id
	}
	g.cells = append(g.cells, depSet{})
	return cellID(len(g.cells) - 1)
}

// release returns cells to the free list. The caller guarantees no effect
// still holds them: effects keep the owner of every cell they joined alive.
func (g *graph) release(ids ...cellID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range ids {
		g.cells[id] = depSet{}
		g.free = append(g.free, id)
	}
}

// releaseCell is the cleanup attached to refs and computeds.
func releaseCell(id cellID) {
	deps.release(id)
}

// count returns the number of subscribers of a cell.
func (g *graph) count(id cellID) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.cells[id].subs)
}

// trackCell subscribes the running effect to the cell. owner is the value
// the cell belongs to; the effect keeps it reachable while subscribed.
func trackCell(id cellID, owner any) {
	if !isTracking() {
		return
	}
	e := ActiveEffect()
	if !e.Active() {
		return
	}
	if deps.subscribe(id, e) {
		e.addDep(id, owner)
	}
}

// triggerCell notifies every subscriber of the cell. Subscribers with a
// scheduler get it invoked, even while running, since the scheduler only
// defers the re-run. The rest re-run synchronously, except the effect
// currently running on this goroutine.
func triggerCell(id cellID) {
	subs := deps.subscribers(id)
	if len(subs) == 0 {
		return
	}
	active := ActiveEffect()
	for _, e := range subs {
		if e == active && e.scheduler == nil {
			continue
		}
		if e.scheduler != nil {
			e.scheduler()
		} else {
			e.Run()
		}
	}
}

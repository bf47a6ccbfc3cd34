package world

// Ledger tracks how much of the player's resource and population
// headroom has already been promised to planned orders this tick, so
// that independent subsystems do not double-spend.
type Ledger struct {
	resource          int
	populationProvide int
	populationUse     int

	reservedResource   int
	reservedPopulation int
}

// Reset loads the tick's actual totals and clears all reservations.
func (l *Ledger) Reset(resource, provide, use int) {
	l.resource = resource
	l.populationProvide = provide
	l.populationUse = use
	l.reservedResource = 0
	l.reservedPopulation = 0
}

// Resource returns the unreserved resource balance.
func (l *Ledger) Resource() int {
	return l.resource - l.reservedResource
}

// Population returns the unreserved population headroom.
func (l *Ledger) Population() int {
	return l.populationProvide - l.populationUse - l.reservedPopulation
}

// TryReserve claims cost resource and population headroom for one
// order. It either claims both or neither.
func (l *Ledger) TryReserve(cost, population int) bool {
	if l.Resource() < cost || l.Population() < population {
		return false
	}
	l.reservedResource += cost
	l.reservedPopulation += population
	return true
}

// Release returns a previous reservation, for orders dropped before
// being issued.
func (l *Ledger) Release(cost, population int) {
	l.reservedResource -= cost
	l.reservedPopulation -= population
	if l.reservedResource < 0 {
		l.reservedResource = 0
	}
	if l.reservedPopulation < 0 {
		l.reservedPopulation = 0
	}
}

package section

import (
	"errors"
	"fmt"
	"sort"
)

// ErrOutOfRange is returned when a station falls outside the stations
// already covered by a Map
var ErrOutOfRange = errors.New("station outside the covered range")

// Map is an ordered mapping from axial station to section record.
//
// The record stored at key s[i] describes the interval [s[i], s[i+1]).
// The last key closes the member and maps to nil. Keys are strictly
// increasing and unique after every operation.
type Map struct {
	keys []float64
	vals []*Section
}

// NewMap returns an empty map
func NewMap() *Map {
	return &Map{}
}

// Len is the number of keys, including the closing one
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the stations in increasing order
func (m *Map) Keys() []float64 {
	return append([]float64(nil), m.keys...)
}

// Values returns the records in key order; the last entry is nil
func (m *Map) Values() []*Section {
	return append([]*Section(nil), m.vals...)
}

// Clone returns an independent copy. Records are shared since they are
// never modified in place.
func (m *Map) Clone() *Map {
	return &Map{keys: m.Keys(), vals: m.Values()}
}

// AddSection appends the interval [start, end) to the end of the map.
// An empty map accepts any start; otherwise start must be the last key.
func (m *Map) AddSection(start, end float64, sec Section) error {
	if !(end > start) {
		return fmt.Errorf("section end %g must be greater than start %g", end, start)
	}
	n := len(m.keys)
	if n == 0 {
		m.keys = append(m.keys, start, end)
		m.vals = append(m.vals, &sec, nil)
		return nil
	}
	if m.keys[n-1] != start {
		return fmt.Errorf("section start %g does not continue the map ending at %g", start, m.keys[n-1])
	}
	m.vals[n-1] = &sec
	m.keys = append(m.keys, end)
	m.vals = append(m.vals, nil)
	return nil
}

// AddNode makes s a key. The new key takes the record of the interval
// that contained it, so the interval is split in two identical halves.
// Adding an existing key does nothing.
func (m *Map) AddNode(s float64) error {
	i, found := m.search(s)
	if found {
		return nil
	}
	if i == 0 || i == len(m.keys) {
		if len(m.keys) == 0 {
			return fmt.Errorf("%w: %g (map is empty)", ErrOutOfRange, s)
		}
		return fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, s, m.keys[0], m.keys[len(m.keys)-1])
	}

	m.keys = append(m.keys, 0)
	copy(m.keys[i+1:], m.keys[i:])
	m.keys[i] = s

	m.vals = append(m.vals, nil)
	copy(m.vals[i+1:], m.vals[i:])
	m.vals[i] = m.vals[i-1]
	return nil
}

// InsertSection assigns sec to the band [start, end), splitting the
// intervals at its edges. Whatever the band covered before is replaced.
func (m *Map) InsertSection(start, end float64, sec Section) error {
	return m.Overlay(start, end, func(Section) Section { return sec })
}

// Overlay splits the map at start and end and replaces every record in
// [start, end) by fn applied to it. A band of zero width only adds the node.
func (m *Map) Overlay(start, end float64, fn func(prev Section) Section) error {
	if end < start {
		return fmt.Errorf("band end %g is before start %g", end, start)
	}
	if err := m.AddNode(start); err != nil {
		return err
	}
	if end == start {
		return nil
	}
	if err := m.AddNode(end); err != nil {
		return err
	}
	i0, _ := m.search(start)
	i1, _ := m.search(end)
	for i := i0; i < i1; i++ {
		next := fn(*m.vals[i])
		m.vals[i] = &next
	}
	return nil
}

// At returns the record valid at station s, that is the record of the
// interval [s[i], s[i+1]) holding s. It reports false outside the
// intervals, including at the closing key.
func (m *Map) At(s float64) (Section, bool) {
	i, found := m.search(s)
	if !found {
		i--
	}
	if i < 0 || i >= len(m.keys)-1 {
		return Section{}, false
	}
	return *m.vals[i], true
}

// Span returns the first and last key
func (m *Map) Span() (float64, float64) {
	if len(m.keys) == 0 {
		return 0, 0
	}
	return m.keys[0], m.keys[len(m.keys)-1]
}

// Validate checks the ordering invariants of the map
func (m *Map) Validate() error {
	n := len(m.keys)
	if n != len(m.vals) {
		return fmt.Errorf("map has %d keys but %d values", n, len(m.vals))
	}
	if n == 0 {
		return nil
	}
	if n == 1 {
		return errors.New("map has a single key and no interval")
	}
	for i := 1; i < n; i++ {
		if !(m.keys[i] > m.keys[i-1]) {
			return fmt.Errorf("keys not strictly increasing at %d: %g, %g", i, m.keys[i-1], m.keys[i])
		}
	}
	for i := 0; i < n-1; i++ {
		if m.vals[i] == nil {
			return fmt.Errorf("interval starting at %g has no section", m.keys[i])
		}
	}
	if m.vals[n-1] != nil {
		return fmt.Errorf("closing key %g must not carry a section", m.keys[n-1])
	}
	return nil
}

func (m *Map) search(s float64) (int, bool) {
	i := sort.SearchFloat64s(m.keys, s)
	return i, i < len(m.keys) && m.keys[i] == s
}

// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

// A Group is the series classified under one algorithm, in the order
// they were added.
type Group struct {
	Algorithm string
	Members   []*Series
}

// NRange returns the smallest and largest N over all members of g.
func (g *Group) NRange() (lo, hi int) {
	first := true
	for _, s := range g.Members {
		if len(s.Samples) == 0 {
			continue
		}
		l, h := s.NRange()
		if first || l < lo {
			lo = l
		}
		if first || h > hi {
			hi = h
		}
		first = false
	}
	return lo, hi
}

// Groups maps algorithms to Groups, remembering the order in which
// algorithms were first seen.
type Groups struct {
	order []string
	m     map[string]*Group
}

// Add appends s to the group of s.Algorithm, creating the group if
// necessary.
func (gs *Groups) Add(s *Series) {
	if gs.m == nil {
		gs.m = make(map[string]*Group)
	}
	g, ok := gs.m[s.Algorithm]
	if !ok {
		g = &Group{Algorithm: s.Algorithm}
		gs.m[s.Algorithm] = g
		gs.order = append(gs.order, s.Algorithm)
	}
	g.Members = append(g.Members, s)
}

// Lookup returns the group of algorithm, or nil.
func (gs *Groups) Lookup(algorithm string) *Group {
	return gs.m[algorithm]
}

// All returns the non-empty groups in the order their algorithms were
// first added.
func (gs *Groups) All() []*Group {
	all := make([]*Group, 0, len(gs.order))
	for _, alg := range gs.order {
		if g := gs.m[alg]; len(g.Members) > 0 {
			all = append(all, g)
		}
	}
	return all
}

// Len returns the number of groups.
func (gs *Groups) Len() int {
	return len(gs.order)
}

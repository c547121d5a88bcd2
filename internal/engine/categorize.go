package engine

import "sort"

// IDSet is a set of manage numbers.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id string) { s[id] = struct{}{} }

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Intersect(other IDSet) IDSet {
	res := IDSet{}
	for id := range s {
		if other.Has(id) {
			res[id] = struct{}{}
		}
	}
	return res
}

func (s IDSet) Subtract(other IDSet) IDSet {
	res := IDSet{}
	for id := range s {
		if !other.Has(id) {
			res[id] = struct{}{}
		}
	}
	return res
}

func (s IDSet) Union(other IDSet) IDSet {
	res := make(IDSet, len(s)+len(other))
	for id := range s {
		res[id] = struct{}{}
	}
	for id := range other {
		res[id] = struct{}{}
	}
	return res
}

// List returns the ids in sorted order, for deterministic processing.
func (s IDSet) List() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Categories is the disjoint partition of the visible catalog by campaign
// membership. The four groups cover every visible id exactly once.
type Categories struct {
	Both        IDSet
	PointOnly   IDSet
	FeatureOnly IDSet
	NoEvent     IDSet
}

// Categorize partitions visible ids by point and feature membership. Hidden
// items are absent from visible and therefore from every group, even when a
// campaign lists them.
func Categorize(visible, point, feature IDSet) Categories {
	return Categories{
		Both:        visible.Intersect(point).Intersect(feature),
		PointOnly:   visible.Intersect(point.Subtract(feature)),
		FeatureOnly: visible.Intersect(feature.Subtract(point)),
		NoEvent:     visible.Subtract(point.Union(feature)),
	}
}

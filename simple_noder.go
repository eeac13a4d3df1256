package noding

// SimpleNoder nodes segment strings by intersecting every segment with every other segment. It uses floating point arithmetic and is not robust, but is useful for small inputs and as a reference for other noders.
type SimpleNoder struct {
	lists []*nodeList
}

// NewSimpleNoder returns a brute-force noder.
func NewSimpleNoder() *SimpleNoder {
	return &SimpleNoder{}
}

// ComputeNodes computes all intersections between the segment strings.
func (n *SimpleNoder) ComputeNodes(ss []*SegmentString) error {
	if err := checkSegmentStrings(ss); err != nil {
		return err
	}

	segs := []segmentRef{}
	n.lists = newNodeLists(ss)
	for _, l := range n.lists {
		for i := 0; i < l.segments(); i++ {
			segs = append(segs, segmentRef{l, i})
		}
	}
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			intersect(segs[i], segs[j], addNodes)
		}
	}
	return nil
}

// NodedSubstrings returns the segment strings split at all intersections. Each call returns new segment strings.
func (n *SimpleNoder) NodedSubstrings() ([]*SegmentString, error) {
	if n.lists == nil {
		return nil, ErrNotComputed
	}
	return splitAll(n.lists), nil
}

package noding

// sweepEvent is the left (insert) or right (remove) end of a segment's bounding box along the X-axis.
type sweepEvent struct {
	x      float64
	insert bool
	segmentRef
	bounds Rect
}

// lessH returns true if a is handled before b. Inserts at the same X come before removes so that touching bounding boxes are paired.
func (a *sweepEvent) lessH(b *sweepEvent) bool {
	if a.x != b.x {
		return a.x < b.x
	} else if a.insert != b.insert {
		return a.insert
	}
	return a.before(b.segmentRef)
}

// sweepEvents is a heap priority queue of sweep events.
type sweepEvents []*sweepEvent

func (q sweepEvents) Less(i, j int) bool {
	return q[i].lessH(q[j])
}

func (q sweepEvents) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

// addSegments adds the insert and remove events for all non-zero length segments of l.
func (q *sweepEvents) addSegments(l *nodeList) {
	for i := 0; i < l.segments(); i++ {
		seg := segmentRef{l, i}
		if a, b := seg.points(); a == b {
			continue
		}
		bounds := seg.bounds()
		*q = append(*q,
			&sweepEvent{bounds.X0, true, seg, bounds},
			&sweepEvent{bounds.X1, false, seg, bounds},
		)
	}
}

func (q sweepEvents) Init() {
	n := len(q)
	for i := n/2 - 1; 0 <= i; i-- {
		q.down(i, n)
	}
}

func (q *sweepEvents) Pop() *sweepEvent {
	n := len(*q) - 1
	q.Swap(0, n)
	q.down(0, n)

	item := (*q)[n]
	*q = (*q)[:n]
	return item
}

// from container/heap
func (q sweepEvents) down(i0, n int) {
	i := i0
	for {
		j1 := 2*i + 1
		if n <= j1 || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && q.Less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !q.Less(j, i) {
			break
		}
		q.Swap(i, j)
		i = j
	}
}

// sweepPairs calls f for every pair of segments whose bounding boxes overlap or touch. Pairs are found by sweeping a vertical line from left to right while keeping the set of segments whose X-interval contains the sweep line.
func sweepPairs(ls []*nodeList, f func(a, b segmentRef)) {
	queue := sweepEvents{}
	for _, l := range ls {
		queue.addSegments(l)
	}
	queue.Init()

	active := map[segmentRef]*sweepEvent{}
	order := []*sweepEvent{} // active events in insertion order, for deterministic pairing
	for 0 < len(queue) {
		event := queue.Pop()
		if !event.insert {
			delete(active, event.segmentRef)
			continue
		}

		k := 0
		for _, other := range order {
			if _, ok := active[other.segmentRef]; !ok {
				continue
			}
			order[k] = other
			k++
			if other.bounds.Y0 <= event.bounds.Y1 && event.bounds.Y0 <= other.bounds.Y1 {
				f(other.segmentRef, event.segmentRef)
			}
		}
		order = append(order[:k], event)
		active[event.segmentRef] = event
	}
}

// SweepNoder nodes segment strings like SimpleNoder, but only intersects segments whose bounding boxes overlap, which are found using a sweep line. It gives the same result as SimpleNoder.
type SweepNoder struct {
	lists []*nodeList
}

// NewSweepNoder returns a sweep-line noder.
func NewSweepNoder() *SweepNoder {
	return &SweepNoder{}
}

// ComputeNodes computes all intersections between the segment strings.
func (n *SweepNoder) ComputeNodes(ss []*SegmentString) error {
	if err := checkSegmentStrings(ss); err != nil {
		return err
	}

	n.lists = newNodeLists(ss)
	sweepPairs(n.lists, func(a, b segmentRef) {
		intersect(a, b, addNodes)
	})
	return nil
}

// NodedSubstrings returns the segment strings split at all intersections. Each call returns new segment strings.
func (n *SweepNoder) NodedSubstrings() ([]*SegmentString, error) {
	if n.lists == nil {
		return nil, ErrNotComputed
	}
	return splitAll(n.lists), nil
}

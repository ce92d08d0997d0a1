package replacer

// automaton is a byte-level Aho-Corasick machine with a fully expanded
// transition table.
type automaton struct {
	delta [][256]int32
	depth []int
	// out is the lowest pattern index whose text equals the node's path, or -1.
	out []int32
	// dict is the nearest node on the failure chain with out >= 0, or -1.
	dict []int32
}

func newAutomaton(patterns [][]byte) *automaton {
	a := &automaton{}
	a.addNode(0)

	for idx, p := range patterns {
		cur := int32(0)
		for _, b := range p {
			next := a.delta[cur][b]
			if next < 0 {
				next = a.addNode(a.depth[cur] + 1)
				a.delta[cur][b] = next
			}
			cur = next
		}
		if a.out[cur] < 0 {
			a.out[cur] = int32(idx)
		}
	}

	fail := make([]int32, len(a.delta))
	queue := make([]int32, 0, len(a.delta))
	for b := 0; b < 256; b++ {
		v := a.delta[0][b]
		if v < 0 {
			a.delta[0][b] = 0
			continue
		}
		fail[v] = 0
		queue = append(queue, v)
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for b := 0; b < 256; b++ {
			v := a.delta[u][b]
			if v < 0 {
				a.delta[u][b] = a.delta[fail[u]][b]
				continue
			}
			f := a.delta[fail[u]][b]
			fail[v] = f
			if a.out[f] >= 0 {
				a.dict[v] = f
			} else {
				a.dict[v] = a.dict[f]
			}
			queue = append(queue, v)
		}
	}

	return a
}

func (a *automaton) addNode(depth int) int32 {
	var row [256]int32
	for i := range row {
		row[i] = -1
	}
	a.delta = append(a.delta, row)
	a.depth = append(a.depth, depth)
	a.out = append(a.out, -1)
	a.dict = append(a.dict, -1)
	return int32(len(a.delta) - 1)
}

// longest returns the node of the longest pattern ending in state, or -1.
func (a *automaton) longest(state int32) int32 {
	if a.out[state] >= 0 {
		return state
	}
	return a.dict[state]
}

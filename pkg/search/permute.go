package search

// multiset is a letter pool reduced to distinct letters in first-occurrence
// order and how many of each are available.
type multiset struct {
	letters []rune
	counts  []int
	size    int
}

func newMultiset(pool string) multiset {
	var m multiset
	pos := make(map[rune]int)
	for _, r := range pool {
		i, ok := pos[r]
		if !ok {
			i = len(m.letters)
			pos[r] = i
			m.letters = append(m.letters, r)
			m.counts = append(m.counts, 0)
		}
		m.counts[i]++
		m.size++
	}
	return m
}

// permute emits every distinct arrangement of k letters drawn from m, each
// letter used at most as often as it occurs. Letters are tried in
// first-occurrence order, which fixes the emission order. enter, when non
// nil, is asked before descending into a prefix; returning false skips every
// arrangement starting with it. The slice passed to emit is reused.
func permute(m multiset, k int, enter func(prefix []rune) bool, emit func(word []rune)) {
	if k <= 0 || k > m.size {
		return
	}
	counts := make([]int, len(m.counts))
	copy(counts, m.counts)
	buf := make([]rune, 0, k)

	var walk func()
	walk = func() {
		if len(buf) == k {
			emit(buf)
			return
		}
		for i, r := range m.letters {
			if counts[i] == 0 {
				continue
			}
			buf = append(buf, r)
			if enter == nil || enter(buf) {
				counts[i]--
				walk()
				counts[i]++
			}
			buf = buf[:len(buf)-1]
		}
	}
	walk()
}

// Permutations returns every distinct k-letter arrangement of pool.
func Permutations(pool string, k int) []string {
	var out []string
	permute(newMultiset(pool), k, nil, func(word []rune) {
		out = append(out, string(word))
	})
	return out
}

// RemoveLetters takes one occurrence of each letter of word out of pool,
// always the leftmost remaining one. ok is false when pool lacks a letter.
func RemoveLetters(pool, word string) (rest string, ok bool) {
	runes := []rune(pool)
	for _, r := range word {
		j := -1
		for i, p := range runes {
			if p == r {
				j = i
				break
			}
		}
		if j < 0 {
			return pool, false
		}
		runes = append(runes[:j], runes[j+1:]...)
	}
	return string(runes), true
}

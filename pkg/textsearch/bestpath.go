package textsearch

import (
	"container/heap"
	"math"

	"github.com/bastiangx/anahash/pkg/lm"
)

// passThroughCost is the cost of leaving a token unchanged - finite so
// a path always exists even when no segment matches anything, per
// spec.md §4.9.
const passThroughCost = 1.5

type edge struct {
	from, to int
	match    *Match // nil for a pass-through edge
}

func buildEdges(n int, matches []Match) [][]edge {
	out := make([][]edge, n)
	for i := range matches {
		m := &matches[i]
		out[m.TokenBegin] = append(out[m.TokenBegin], edge{from: m.TokenBegin, to: m.TokenEnd, match: m})
	}
	for i := 0; i < n; i++ {
		out[i] = append(out[i], edge{from: i, to: i + 1})
	}
	return out
}

func edgeCost(e edge) float64 {
	if e.match == nil {
		return passThroughCost
	}
	base := float64(e.to - e.from)
	variantCost := 1 - e.match.bestVariantScore()
	return base + variantCost
}

// path is one candidate cover: the ordered edges chosen from 0 to N.
type path struct {
	edges []edge
	cost  float64
}

// Consolidate selects a single non-overlapping cover of the token
// sequence. With no LM collaborator (or lmModel is a lm.NoOp), it
// returns the single lowest-cost path via forward DP over the DAG
// (spec.md §4.9's "Run shortest-path search on sums of base_cost +
// variant_cost"). With an LM collaborator, it extracts up to
// tp.MaxSeq lowest-cost candidate paths and picks the one maximizing
// the weighted combination of normalized variant/LM/context scores
// (spec.md §4.9's log-ratio-to-best formula), following the bounded
// priority-queue technique spec.md §9 recommends for top-K extraction.
func Consolidate(tokens []Token, matches []Match, lmModel lm.Model, tp Params) []Match {
	n := len(tokens)
	if n == 0 {
		return nil
	}
	edges := buildEdges(n, matches)

	if _, isNoOp := lmModel.(lm.NoOp); lmModel == nil || isNoOp {
		best := shortestPath(n, edges)
		return extractMatches(best)
	}

	candidates := kShortestPaths(n, edges, tp.MaxSeq)
	if len(candidates) == 0 {
		return nil
	}
	return pickBestByLM(candidates, tokens, lmModel, tp)
}

// shortestPath runs a forward DP: since edges only increase position,
// a single left-to-right pass suffices (no Dijkstra needed).
func shortestPath(n int, edges [][]edge) path {
	dist := make([]float64, n+1)
	prev := make([]edge, n+1)
	for i := 1; i <= n; i++ {
		dist[i] = math.Inf(1)
	}
	for i := 0; i < n; i++ {
		for _, e := range edges[i] {
			c := dist[i] + edgeCost(e)
			if c < dist[e.to] {
				dist[e.to] = c
				prev[e.to] = e
			}
		}
	}
	var chosen []edge
	for at := n; at > 0; {
		e := prev[at]
		chosen = append([]edge{e}, chosen...)
		at = e.from
	}
	return path{edges: chosen, cost: dist[n]}
}

type partial struct {
	pos   int
	cost  float64
	edges []edge
}

type partialHeap []partial

func (h partialHeap) Len() int            { return len(h) }
func (h partialHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h partialHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *partialHeap) Push(x interface{}) { *h = append(*h, x.(partial)) }
func (h *partialHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// kShortestPaths explores partial paths in increasing-cost order,
// expanding the cheapest frontier first, and collects up to maxSeq
// completed (reaching position n) paths - the bounded priority-queue
// top-K extraction spec.md §9 describes.
func kShortestPaths(n int, edges [][]edge, maxSeq int) []path {
	if maxSeq <= 0 {
		maxSeq = 1
	}
	h := &partialHeap{{pos: 0, cost: 0}}
	heap.Init(h)
	var done []path

	// Cap total expansions to avoid pathological blowup on long texts.
	const maxExpansions = 100000
	expansions := 0

	for h.Len() > 0 && len(done) < maxSeq && expansions < maxExpansions {
		cur := heap.Pop(h).(partial)
		expansions++
		if cur.pos == n {
			done = append(done, path{edges: cur.edges, cost: cur.cost})
			continue
		}
		for _, e := range edges[cur.pos] {
			next := partial{
				pos:   e.to,
				cost:  cur.cost + edgeCost(e),
				edges: append(append([]edge(nil), cur.edges...), e),
			}
			heap.Push(h, next)
		}
	}
	return done
}

func extractMatches(p path) []Match {
	var out []Match
	for _, e := range p.edges {
		if e.match != nil {
			out = append(out, *e.match)
		}
	}
	return out
}

func pickBestByLM(candidates []path, tokens []Token, lmModel lm.Model, tp Params) []Match {
	type scored struct {
		p       path
		variant float64
		lmScore float64
		context float64
	}

	scoredPaths := make([]scored, len(candidates))
	bestVariant, bestLM, bestContext := math.Inf(-1), math.Inf(-1), math.Inf(-1)

	for i, p := range candidates {
		words, variantAvg, contextSum := reconstruct(tokens, p)
		lp := lmModel.LogProb(words)
		scoredPaths[i] = scored{p: p, variant: variantAvg, lmScore: lp, context: contextSum}
		if variantAvg > bestVariant {
			bestVariant = variantAvg
		}
		if lp > bestLM {
			bestLM = lp
		}
		if contextSum > bestContext {
			bestContext = contextSum
		}
	}

	lv, ll, lc := tp.VariantModelWeight, tp.LMWeight, tp.ContextRulesWeight+tp.ContextWeight
	denom := lv + ll + lc
	if denom == 0 {
		denom = 1
	}

	bestIdx, bestCombined := 0, math.Inf(-1)
	for i, s := range scoredPaths {
		v := logRatio(s.variant, bestVariant)
		l := s.lmScore - bestLM
		c := logRatio(s.context, bestContext)
		combined := (lv*v + ll*l + lc*c) / denom
		if combined > bestCombined {
			bestCombined = combined
			bestIdx = i
		}
	}
	return extractMatches(scoredPaths[bestIdx].p)
}

func logRatio(value, best float64) float64 {
	if best <= 0 || value <= 0 {
		return 0
	}
	return math.Log(value / best)
}

func reconstruct(tokens []Token, p path) (words []string, avgVariantScore float64, contextSum float64) {
	var scores []float64
	for _, e := range p.edges {
		if e.match == nil {
			words = append(words, tokens[e.from].Text)
			continue
		}
		if len(e.match.Variants) > 0 {
			words = append(words, e.match.Variants[0].Text)
			scores = append(scores, e.match.Variants[0].Similarity)
		}
		contextSum += e.match.ContextScore
	}
	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		avgVariantScore = sum / float64(len(scores))
	}
	return words, avgVariantScore, contextSum
}

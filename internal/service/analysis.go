package service

import (
	"context"
	"sort"

	"github.com/vbonduro/aclaudit/internal/domain"
)

// Count is one bar of a chart. Percent is the share of all counted values;
// Width is relative to the largest bar.
type Count struct {
	Label   string
	Count   int
	Percent float64
	Width   float64
}

// Stack is one group of a stacked chart, split by answer.
type Stack struct {
	Label    string
	Total    int
	Width    float64
	Segments []Count
}

type Analysis struct {
	Mode     domain.Mode
	Entries  []*domain.Entry
	ByGroup  []Count
	ByAnswer []Count
	Stacked  []Stack
}

// Analyze summarizes the session's entries. In location mode entries are
// grouped by their location; in zone mode by their Food Production Zone
// column, which only zone checklist answers carry.
func (s *AuditService) Analyze(ctx context.Context, sessionID string, mode domain.Mode) (*Analysis, error) {
	entries, err := s.Entries(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return Summarize(entries, mode), nil
}

// Summarize is the pure part of Analyze.
func Summarize(entries []*domain.Entry, mode domain.Mode) *Analysis {
	group := func(e *domain.Entry) string { return e.Location }
	if mode == domain.ModeZone {
		group = func(e *domain.Entry) string { return e.ZoneQuestion() }
	}

	var groups, answers []string
	type pair struct{ group, answer string }
	var answered []pair
	for _, e := range entries {
		g := group(e)
		if g != "" {
			groups = append(groups, g)
		}
		if e.Answer != "" {
			answers = append(answers, e.Answer)
			if g != "" {
				answered = append(answered, pair{g, e.Answer})
			}
		}
	}

	a := &Analysis{
		Mode:     mode,
		Entries:  entries,
		ByGroup:  countValues(groups),
		ByAnswer: countValues(answers),
	}

	totals := make([]string, len(answered))
	cells := map[pair]int{}
	for i, p := range answered {
		totals[i] = p.group
		cells[p]++
	}
	for _, g := range countValues(totals) {
		st := Stack{Label: g.Label, Total: g.Count, Width: g.Width}
		for _, ans := range a.ByAnswer {
			n := cells[pair{g.Label, ans.Label}]
			seg := Count{Label: ans.Label, Count: n}
			if g.Count > 0 {
				seg.Percent = 100 * float64(n) / float64(g.Count)
				seg.Width = seg.Percent
			}
			st.Segments = append(st.Segments, seg)
		}
		a.Stacked = append(a.Stacked, st)
	}
	return a
}

// countValues counts occurrences, ordered by descending count with ties kept
// in first-appearance order.
func countValues(values []string) []Count {
	index := map[string]int{}
	var counts []Count
	for _, v := range values {
		i, ok := index[v]
		if !ok {
			i = len(counts)
			index[v] = i
			counts = append(counts, Count{Label: v})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })

	if len(counts) == 0 {
		return counts
	}
	top := counts[0].Count
	for i := range counts {
		counts[i].Percent = 100 * float64(counts[i].Count) / float64(len(values))
		counts[i].Width = 100 * float64(counts[i].Count) / float64(top)
	}
	return counts
}

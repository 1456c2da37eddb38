package analytics

import (
	"sort"

	"bidboard/internal/board"
)

// NeutralColor is used when a group color does not resolve to a palette entry.
const NeutralColor = "#c4c4c4"

// DefaultPalette maps the board's color tokens to hex values.
func DefaultPalette() map[string]string {
	return map[string]string{
		"green":     "#00c875",
		"dark-blue": "#0086c0",
		"blue":      "#579bfc",
		"purple":    "#a25ddc",
		"red":       "#e2445c",
		"orange":    "#fdab3d",
		"yellow":    "#ffcb00",
		"grey":      "#808080",
	}
}

// BuildFlowGraph aggregates current per-group counts into a two-level flow
// graph: one synthetic root node fanning out to every live lifecycle group,
// links ordered by descending member count. Current state only; move history
// plays no part here.
func BuildFlowGraph(items []board.Item, palette map[string]string) FlowGraph {
	type groupAgg struct {
		title string
		color string
		count int
	}

	aggs := make(map[string]*groupAgg)
	var order []string
	for _, item := range items {
		title := item.GroupTitle
		if title == "" {
			title = item.StatusText
		}
		if title == "" {
			title = "Ungrouped"
		}

		agg, ok := aggs[title]
		if !ok {
			agg = &groupAgg{title: title, color: resolveColor(item.GroupColor, palette)}
			aggs[title] = agg
			order = append(order, title)
		}
		agg.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if aggs[order[i]].count != aggs[order[j]].count {
			return aggs[order[i]].count > aggs[order[j]].count
		}
		return order[i] < order[j]
	})

	graph := FlowGraph{
		Nodes: []FlowNode{{Name: "All Items"}},
		Links: []FlowLink{},
	}
	for _, title := range order {
		agg := aggs[title]
		graph.Nodes = append(graph.Nodes, FlowNode{Name: agg.title, Color: agg.color})
		graph.Links = append(graph.Links, FlowLink{
			Source: 0,
			Target: len(graph.Nodes) - 1,
			Value:  agg.count,
			Color:  agg.color,
		})
	}

	return graph
}

func resolveColor(token string, palette map[string]string) string {
	if hex, ok := palette[token]; ok {
		return hex
	}
	return NeutralColor
}

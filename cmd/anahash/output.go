package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bastiangx/anahash/internal/utils"
	"github.com/bastiangx/anahash/pkg/variant"
	"github.com/charmbracelet/lipgloss"
)

// matchJSON is the wire shape of a ranked match in spec.md §6's JSON
// output format. Rank is the match's 1-based position in FindVariants'
// already-sorted output, not re-derived from score (ties are broken by
// entry id there, not by score alone).
type matchJSON struct {
	Rank      uint16   `json:"rank"`
	Text      string   `json:"text"`
	Score     float64  `json:"score"`
	DistScore float64  `json:"dist_score"`
	FreqScore float64  `json:"freq_score"`
	Lexicons  []string `json:"lexicons,omitempty"`
	Via       string   `json:"via,omitempty"`
}

func toMatchJSON(m variant.Match) matchJSON {
	return matchJSON{
		Text:      m.Text,
		Score:     m.Similarity,
		DistScore: m.DistScore,
		FreqScore: m.FreqScore,
		Lexicons:  m.Lexicons,
		Via:       m.Via,
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "235", Dark: "255"})
	rankStyle   = lipgloss.NewStyle().Faint(true)
	viaStyle    = lipgloss.NewStyle().Faint(true)
)

// printMatchesJSON writes matches as a JSON array, numbering each
// entry by its position in the already-ranked slice.
func printMatchesJSON(matches []variant.Match) error {
	ranks := utils.CreateRankList(len(matches))
	out := make([]matchJSON, len(matches))
	for i, m := range matches {
		out[i] = toMatchJSON(m)
		out[i].Rank = ranks[i]
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// printMatchesTable writes matches as a lipgloss-styled column table,
// for interactive use.
func printMatchesTable(matches []variant.Match) {
	if len(matches) == 0 {
		fmt.Println("(no matches)")
		return
	}
	ranks := utils.CreateRankList(len(matches))
	fmt.Println(headerStyle.Render(fmt.Sprintf("%4s %-24s %8s %8s %8s  %s", "RANK", "TEXT", "SCORE", "DIST", "FREQ", "LEXICONS")))
	for i, m := range matches {
		line := fmt.Sprintf("%s %-24s %8.3f %8.3f %8.3f  %s",
			rankStyle.Render(fmt.Sprintf("%4d", ranks[i])), m.Text, m.Similarity, m.DistScore, m.FreqScore, strings.Join(m.Lexicons, ","))
		if m.Via != "" {
			line += viaStyle.Render(fmt.Sprintf("  (via %s)", m.Via))
		}
		fmt.Println(line)
	}
}

// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package vision

import (
	"fmt"
	"strings"

	"github.com/tomtom215/moodboard/internal/models"
)

const extractionPrompt = `Analyze these inspiration images and extract the aesthetic mood.

Return a JSON object with:
{
  "name": "Short aesthetic name (e.g. 'Coastal Grandmother', 'Dark Academia')",
  "mood": "2-4 word mood description",
  "color_palette": [{"name": "Color name", "hex": "#hexcode"}],
  "textures": ["texture"],
  "key_pieces": ["clothing or accessory type"],
  "avoid": ["thing that does not fit"],
  "target_brands": {"accessible": ["brand"], "mid_range": ["brand"], "aspirational": ["brand"]},
  "search_queries": ["specific shoppable query"]
}

Use 3-5 colors, 3-5 textures, 4-6 key pieces, 2-3 things to avoid, 2-4 brands
per tier and 5-8 search queries. Make the search queries specific and
shoppable, like "oversized linen blazer women" or "chunky gold hoop earrings".
Focus on the feeling and energy of the images, not on copying exact items.`

const textOnlyPrompt = `No images were provided. Build the aesthetic from the user's description alone.`

const relevanceSystem = `You are a fashion stylist scoring shopping results against an aesthetic profile.
Score every numbered product from 0 (does not fit) to 10 (perfect fit).
Return JSON only: {"scores": [{"index": 1, "score": 8}]}`

const coherenceSystem = `You are a fashion stylist reviewing a finished edit of products for an aesthetic profile.
For every numbered product decide whether it belongs with the rest. Use "swap" only for items
that clearly clash with the profile or the other pieces; otherwise use "keep".
Return JSON only: {"decisions": [{"index": 1, "action": "keep", "reason": "short reason"}]}`

// extractionText builds the user text for profile extraction.
func extractionText(prompt string, hasImages bool) string {
	var b strings.Builder
	b.WriteString(extractionPrompt)
	if !hasImages {
		b.WriteString("\n\n")
		b.WriteString(textOnlyPrompt)
	}
	if prompt = strings.TrimSpace(prompt); prompt != "" {
		b.WriteString("\n\nUser context: ")
		b.WriteString(prompt)
	}
	return b.String()
}

// describeProfile renders the profile fields the oracle judges against.
func describeProfile(p *models.AestheticProfile) string {
	if p == nil {
		return "Profile: (none)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Profile: %s", p.Name)
	if p.Mood != "" {
		fmt.Fprintf(&b, " (%s)", p.Mood)
	}
	writeList(&b, "Colors", p.ColorNames())
	writeList(&b, "Textures", p.Textures)
	writeList(&b, "Key pieces", p.KeyPieces)
	writeList(&b, "Avoid", p.Avoid)
	return b.String()
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s: %s", label, strings.Join(items, ", "))
}

// describeItem renders one numbered product line.
func describeItem(it models.OracleItem) string {
	line := fmt.Sprintf("%d. %s", it.Position, it.Title)
	if it.Brand != "" {
		line += " by " + it.Brand
	}
	line += fmt.Sprintf(" | $%.2f", it.Price)
	if it.Category != "" {
		line += " | " + string(it.Category)
	}
	return line
}

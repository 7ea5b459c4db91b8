package text

import (
	"hash/fnv"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/enescakir/emoji"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	Ellipsis = "…"
)

var (
	EmojiContact    = emoji.Parse(":bust_in_silhouette:")
	EmojiMember     = emoji.Parse(":busts_in_silhouette:")
	EmojiRoom       = emoji.Parse(":speech_balloon:")
	EmojiGroup      = emoji.Parse(":house:")
	EmojiPublicRoom = emoji.Parse(":globe_with_meridians:")
	EmojiInvite     = emoji.Parse(":envelope:")
	EmojiUnknown    = emoji.QuestionMark.String()
)

var (
	sectionColorHashSalt uint32 = 6969420
	// header palette, indexed sectionColors[x][y]
	sectionColors = colorGrid(4, 4)
)

// Return the time in a human-readable format relative to the current time.
func RelativeTime(then time.Time) string {
	now := time.Now()
	ago := now.Sub(then)
	if ago < time.Minute {
		return "just now"
	} else if ago < humanize.Week {
		return humanize.CustomRelTime(then, now, "ago", "from now", magnitudes)
	}
	return then.Format("02 Jan 2006 15:04 MST")
}

// Magnitudes for relative time.
var magnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "now", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
	{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
	{D: math.MaxInt64, Format: "a long while %s", DivBy: 1},
}

// SectionColor picks a stable header color for a section name.
func SectionColor(name string) lipgloss.Color {
	xSteps := len(sectionColors)
	ySteps := len(sectionColors[0])

	hasher := fnv.New32a()
	hasher.Write([]byte(name))
	hash := hasher.Sum32() + sectionColorHashSalt
	idx := int(hash % uint32(xSteps*ySteps))
	return lipgloss.Color(sectionColors[idx/ySteps][idx%ySteps])
}

// colorGrid blends four corner colors into an xSteps by ySteps grid of hex
// colors, indexed grid[x][y].
func colorGrid(xSteps, ySteps int) [][]string {
	x0y0, _ := colorful.Hex("#F25D94")
	x1y0, _ := colorful.Hex("#EDFF82")
	x0y1, _ := colorful.Hex("#643AFF")
	x1y1, _ := colorful.Hex("#14F9D5")

	// left and right edges, from y0 to y1
	left := make([]colorful.Color, ySteps)
	right := make([]colorful.Color, ySteps)
	for y := range left {
		t := float64(y) / float64(ySteps)
		left[y] = x0y0.BlendLuv(x0y1, t)
		right[y] = x1y0.BlendLuv(x1y1, t)
	}

	grid := make([][]string, xSteps)
	for x := range grid {
		grid[x] = make([]string, ySteps)
		for y := range grid[x] {
			grid[x][y] = left[y].BlendLuv(right[y], float64(x)/float64(xSteps)).Hex()
		}
	}
	return grid
}

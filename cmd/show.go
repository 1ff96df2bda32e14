package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/shufflegrid/internal/card"
	"github.com/arcanaland/shufflegrid/internal/config"
	"github.com/arcanaland/shufflegrid/internal/preview"
	"github.com/arcanaland/shufflegrid/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the assembled grid in the terminal",
	Long: `Show fetches the sources, assembles the grid and prints it in order.
The grid can be shuffled or have positions swapped before printing, which
is handy for checking reorder behaviour without a browser.

Examples:
  shufflegrid show
  shufflegrid show --shuffle
  shufflegrid show --swap 2,5 --swap 3,4
  shufflegrid show --art --animate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		shuffle, _ := cmd.Flags().GetBool("shuffle")
		swaps, _ := cmd.Flags().GetStringArray("swap")
		art, _ := cmd.Flags().GetBool("art")
		animate, _ := cmd.Flags().GetBool("animate")
		asJSON, _ := cmd.Flags().GetBool("json")

		pairs := make([][2]int, 0, len(swaps))
		for _, s := range swaps {
			i, j, err := parseSwap(s)
			if err != nil {
				return err
			}
			pairs = append(pairs, [2]int{i, j})
		}

		g := loadGrid(cmd.Context(), cfg, logger)
		if shuffle {
			g.Shuffle()
		}
		for _, p := range pairs {
			if !g.Swap(p[0], p[1]) {
				fmt.Fprintf(os.Stderr, "Ignoring swap %d,%d: out of range or touches the intro card\n", p[0], p[1])
			}
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(render.DescribeAll(g.Items(), cfg.RevealStep()))
		}

		var thumbs *preview.Thumbnailer
		if art {
			thumbs = &preview.Thumbnailer{Width: 16, Height: 8, CacheDir: config.GetCacheDir()}
		}

		printer := &gridPrinter{cards: g.Items(), thumbs: thumbs, cmd: cmd}
		if animate {
			printer.animate(cfg.RevealStep())
		} else {
			printer.printAll()
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("shuffle", false, "Shuffle the grid before printing")
	showCmd.Flags().StringArray("swap", nil, "Swap two positions before printing, as i,j (repeatable)")
	showCmd.Flags().Bool("art", false, "Draw card images as ANSI thumbnails")
	showCmd.Flags().Bool("animate", false, "Reveal cards one after another")
	showCmd.Flags().Bool("json", false, "Print render descriptors as JSON")
}

// parseSwap parses an "i,j" position pair
func parseSwap(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid swap %q, expected i,j", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid swap %q: %v", s, err)
	}
	j, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid swap %q: %v", s, err)
	}
	return i, j, nil
}

type gridPrinter struct {
	cards  []card.Card
	thumbs *preview.Thumbnailer
	cmd    *cobra.Command
}

func (p *gridPrinter) printAll() {
	fmt.Println()
	for _, d := range render.DescribeAll(p.cards, 0) {
		p.printCard(d)
	}
}

// animate prints cards through the reveal scheduler, each step apart
func (p *gridPrinter) animate(step time.Duration) {
	byID := make(map[string]render.Descriptor, len(p.cards))
	for _, d := range render.DescribeAll(p.cards, 0) {
		byID[d.ID] = d
	}

	var wg sync.WaitGroup
	wg.Add(len(p.cards))
	reveal := render.NewReveal(step, func(id string) {
		defer wg.Done()
		p.printCard(byID[id])
	})
	renderer := render.NewRenderer(step, reveal)
	defer renderer.Close()

	fmt.Println()
	renderer.Render(p.cards)
	wg.Wait()
}

func (p *gridPrinter) printCard(d render.Descriptor) {
	var artLines []string
	if p.thumbs != nil {
		c := p.cardByID(d.ID)
		art, err := p.thumbs.Thumbnail(p.cmd.Context(), c)
		if err != nil && debug {
			fmt.Fprintf(os.Stderr, "Image for %s unavailable, using gradient: %v\n", d.ID, err)
		}
		artLines = strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	}

	infoLines := describeLines(d, infoWidth(artLines))
	printColumns(artLines, infoLines)
	fmt.Println()
}

func (p *gridPrinter) cardByID(id string) card.Card {
	for _, c := range p.cards {
		if c.ID == id {
			return c
		}
	}
	return card.Card{}
}

// describeLines formats the info column for one card
func describeLines(d render.Descriptor, width int) []string {
	var lines []string

	swatch := strings.TrimSuffix(preview.Gradient(d.Gradient.From, d.Gradient.To, 6, 1), "\n")
	header := fmt.Sprintf("%s %s", colorize.HiBlackString("%2d.", d.Position), swatch)
	if d.ShowTitle {
		header += " " + colorize.HiWhiteString("%s", d.Title)
	} else if d.Icon != "" {
		header += " " + colorize.HiBlackString("%s", d.Icon)
	}
	lines = append(lines, header)

	meta := colorize.CyanString("%s", kindLabel(d.Kind)) + colorize.HiBlackString(" · %s", d.Variant)
	if d.Badge != nil {
		meta += colorize.HiBlackString(" · badge %s", d.Badge.Label)
	}
	if !d.Draggable {
		meta += colorize.YellowString(" · pinned")
	}
	lines = append(lines, "    "+meta)

	if d.Description != "" {
		for _, l := range wrapText(d.Description, width-4) {
			lines = append(lines, "    "+l)
		}
	}
	if d.Linked() {
		lines = append(lines, "    "+colorize.BlueString("%s", d.Link))
	}
	return lines
}

func kindLabel(k card.Kind) string {
	switch k {
	case card.KindIntro:
		return "intro"
	case card.KindFeed:
		return "post"
	case card.KindSocial:
		return "social"
	case card.KindProject:
		return "project"
	default:
		return string(k)
	}
}

// infoWidth returns the room left for the info column
func infoWidth(artLines []string) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80 // Default if we can't get terminal width
	}

	artWidth := 0
	for _, l := range artLines {
		if w := len([]rune(preview.StripAnsi(l))); w > artWidth {
			artWidth = w
		}
	}
	if artWidth > 0 {
		width -= artWidth + 4
	}
	if width < 20 {
		width = 20
	}
	return width
}

// printColumns prints art on the left and info on the right
func printColumns(artLines, infoLines []string) {
	artWidth := 0
	for _, l := range artLines {
		if w := len([]rune(preview.StripAnsi(l))); w > artWidth {
			artWidth = w
		}
	}

	rows := max(len(artLines), len(infoLines))
	for i := 0; i < rows; i++ {
		fmt.Print("  ")
		if artWidth > 0 {
			if i < len(artLines) {
				fmt.Print(artLines[i])
				fmt.Print(strings.Repeat(" ", artWidth-len([]rune(preview.StripAnsi(artLines[i])))+2))
			} else {
				fmt.Print(strings.Repeat(" ", artWidth+2))
			}
		}
		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}
		fmt.Println()
	}
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	for _, word := range strings.Fields(text) {
		if currentLine == "" {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		result = append(result, currentLine)
	}
	return result
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/deck/tui/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const (
	helpMaxWidth = 60
	helpMinWidth = 40
)

// SetStyledHelp installs deck's help renderer on cmd.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
}

// ApplyStyledHelpRecursive installs the help renderer on cmd and every
// subcommand, and silences cobra's usage dump on errors. Call it once all
// subcommands are attached.
func ApplyStyledHelpRecursive(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
	cmd.SetUsageFunc(func(*cobra.Command) error { return nil })
	for _, sub := range cmd.Commands() {
		ApplyStyledHelpRecursive(sub)
	}
}

func styledHelpFunc(cmd *cobra.Command, _ []string) {
	renderHelp(cmd.OutOrStdout(), cmd, helpWidth()-2)
}

func helpWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < helpMinWidth || width > helpMaxWidth {
		return helpMaxWidth
	}
	return width
}

// helpPage renders one command's help. Every line is indented by one space.
type helpPage struct {
	w       io.Writer
	t       *theme.Theme
	width   int
	section lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
}

func renderHelp(w io.Writer, cmd *cobra.Command, width int) {
	t := theme.DefaultTheme
	p := &helpPage{
		w:       w,
		t:       t,
		width:   width,
		section: lipgloss.NewStyle().Italic(true).Foreground(t.Colors.Orange),
		name:    lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Blue),
		flag:    lipgloss.NewStyle().Foreground(t.Colors.Violet),
	}

	description, examples := splitExamples(cmd.Long)
	if cmd.Example != "" {
		examples = cmd.Example
	}

	p.header(cmd, description)
	p.usage(cmd)
	p.commands(cmd)
	p.flags(cmd)
	p.examples(cmd.Root().Name(), examples)

	if cmd.HasSubCommands() {
		fmt.Fprintf(w, "\n Use \"%s [command] --help\" for more information.\n", cmd.CommandPath())
	}
}

func (p *helpPage) line(s string) {
	fmt.Fprintln(p.w, " "+s)
}

func (p *helpPage) heading(title string) {
	fmt.Fprintln(p.w)
	p.line(p.section.Render(title))
}

func (p *helpPage) header(cmd *cobra.Command, description string) {
	title := lipgloss.NewStyle().Bold(true).Foreground(p.t.Colors.Orange)
	p.line(title.Render(strings.ToUpper(cmd.CommandPath())))

	if cmd.Short != "" {
		for _, l := range strings.Split(wrapText(cmd.Short, p.width), "\n") {
			p.line(p.t.Italic.Render(l))
		}
	}
	if description == "" || description == cmd.Short {
		return
	}
	fmt.Fprintln(p.w)
	for _, l := range strings.Split(wrapText(description, p.width), "\n") {
		p.line(l)
	}
}

func (p *helpPage) usage(cmd *cobra.Command) {
	if !cmd.Runnable() && !cmd.HasSubCommands() {
		return
	}
	p.heading("USAGE")
	if cmd.Runnable() {
		p.line(cmd.UseLine())
	}
	if cmd.HasSubCommands() {
		p.line(cmd.CommandPath() + " [command]")
	}
}

func (p *helpPage) commands(cmd *cobra.Command) {
	var subs []*cobra.Command
	width := 0
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() {
			continue
		}
		subs = append(subs, sub)
		width = max(width, len(sub.Name()))
	}
	if len(subs) == 0 {
		return
	}
	p.heading("COMMANDS")
	for _, sub := range subs {
		pad := strings.Repeat(" ", width-len(sub.Name()))
		p.line(p.name.Render(sub.Name()) + pad + "  " + sub.Short)
	}
}

// flags lists local flags in detail for leaf commands and on one line for
// commands that have subcommands.
func (p *helpPage) flags(cmd *cobra.Command) {
	var visible []*pflag.Flag
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			visible = append(visible, f)
		}
	})
	if len(visible) == 0 {
		return
	}

	if cmd.HasAvailableSubCommands() {
		names := make([]string, 0, len(visible))
		for _, f := range visible {
			names = append(names, strings.TrimSpace(flagLabel(f)))
		}
		fmt.Fprintln(p.w)
		p.line(p.t.Muted.Render("Flags: " + strings.Join(names, ", ")))
		return
	}

	p.heading("FLAGS")
	width := 0
	for _, f := range visible {
		width = max(width, len(flagLabel(f)))
	}
	indent := strings.Repeat(" ", width+2)
	for _, f := range visible {
		label := flagLabel(f)
		usage, choices := parseChoices(f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "[]" && f.DefValue != "0" {
			usage += p.t.Muted.Render(" (default: " + f.DefValue + ")")
		}
		p.line(p.flag.Render(label) + strings.Repeat(" ", width-len(label)) + "  " + usage)
		for _, c := range choices {
			p.line(indent + p.t.Muted.Render("• "+c))
		}
	}
}

func flagLabel(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return "-" + f.Shorthand + ", --" + f.Name
	}
	return "    --" + f.Name
}

// examples styles each example line: comments muted, the binary name, the
// subcommand and flags each in their own color.
func (p *helpPage) examples(root, text string) {
	if text == "" {
		return
	}
	p.heading("EXAMPLES")
	bin := lipgloss.NewStyle().Foreground(p.t.Colors.Cyan)
	sub := lipgloss.NewStyle().Foreground(p.t.Colors.Blue)
	for _, raw := range strings.Split(text, "\n") {
		l := strings.TrimSpace(raw)
		switch {
		case l == "":
			fmt.Fprintln(p.w)
		case strings.HasPrefix(l, "#"):
			p.line(p.t.Muted.Render(l))
		default:
			words := strings.Fields(l)
			for i, word := range words {
				switch {
				case i == 0 && word == root:
					words[i] = bin.Render(word)
				case strings.HasPrefix(word, "-"):
					words[i] = p.flag.Render(word)
				case i == 1:
					words[i] = sub.Render(word)
				}
			}
			p.line("  " + strings.Join(words, " "))
		}
	}
}

// splitExamples separates an "Examples:" block from a long description.
func splitExamples(long string) (description, examples string) {
	for _, marker := range []string{"\nExamples:\n", "\nExample:\n"} {
		if i := strings.Index(long, marker); i >= 0 {
			return strings.TrimSpace(long[:i]), strings.TrimSpace(long[i+len(marker):])
		}
	}
	return long, ""
}

// wrapText wraps each paragraph of text at width, keeping existing line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = helpMaxWidth
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if len(para) <= width {
			out = append(out, para)
			continue
		}
		cur := ""
		for _, word := range strings.Fields(para) {
			switch {
			case cur == "":
				cur = word
			case len(cur)+1+len(word) > width:
				out = append(out, cur)
				cur = word
			default:
				cur += " " + word
			}
		}
		if cur != "" {
			out = append(out, cur)
		}
	}
	return strings.Join(out, "\n")
}

// parseChoices pulls an inline choice list out of a flag usage such as
// "Launch mode: tabs, popups, or auto (default tabs)". Lists need at least
// three entries; anything else is returned unchanged.
func parseChoices(usage string) (string, []string) {
	colon := strings.Index(usage, ": ")
	if colon < 0 {
		return usage, nil
	}
	rest := usage[colon+2:]
	suffix := ""
	if i := strings.Index(rest, " ("); i >= 0 {
		rest, suffix = rest[:i], rest[i:]
	}
	parts := strings.Split(rest, ", ")
	if len(parts) < 3 {
		return usage, nil
	}
	for i, part := range parts {
		parts[i] = strings.TrimSpace(strings.TrimPrefix(part, "or "))
	}
	return usage[:colon+1] + suffix, parts
}

package tui

import (
	"github.com/greg904/costau/internal/tui/styles"
)

const helpMarkdown = `# costau

Exact-arithmetic calculator. Results update as you type.

## Expressions

- Operators: ` + "`+ - * / ^`" + ` and the unicode forms ` + "`× ÷`" + `
- Implicit multiplication: ` + "`2pi`" + `, ` + "`3(1+2)`" + `
- Constants: ` + "`pi`" + `, ` + "`tau`" + `, ` + "`e`" + `
- Functions: ` + "`sin`" + `, ` + "`cos`" + `, ` + "`tan`" + `
- Bases: ` + "`0x1f`" + ` hex, ` + "`0b101`" + ` binary; the result follows the
  smallest base used

## Keys

| Key | Action |
| --- | --- |
| enter | evaluate now, without waiting |
| esc | clear the input |
| ctrl+l | clear history |
| up / down | scroll history |
| ? | toggle this help |
| ctrl+c | quit |
`

func (m *Model) helpView() string {
	renderer := styles.GetMarkdownRenderer(m.width - 4)
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}

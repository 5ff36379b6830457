// Where: internal/ui/console.go
// What: Console output helpers for the operator CLI.
// Why: Keep status lines on stderr visually distinct from JSON/YAML results on stdout.
package ui

import (
	"fmt"
	"io"
)

// Console provides helper methods for formatted output.
type Console struct {
	Out          io.Writer
	EmojiEnabled bool
}

// New creates a new Console writing to the provided writer.
func New(out io.Writer) *Console {
	return &Console{Out: out, EmojiEnabled: true}
}

// Header prints a section header with an emoji.
// Example: 🧩 Resolved configuration
func (c *Console) Header(emoji, title string) {
	fmt.Fprintf(c.Out, "%s%s\n", c.emojiPrefix(emoji), title)
}

// Item prints a key-value item with indentation.
// Example:    Profile:            default/analytics
func (c *Console) Item(key string, value any) {
	fmt.Fprintf(c.Out, "   %-18s %v\n", key+":", value)
}

// Success prints a success message with a checkmark.
func (c *Console) Success(msg string) {
	fmt.Fprintf(c.Out, "%s%s\n", c.emojiPrefix("✅"), msg)
}

// Warn prints a non-fatal warning.
func (c *Console) Warn(msg string) {
	fmt.Fprintf(c.Out, "%s%s\n", c.emojiPrefix("⚠️"), msg)
}

// Error prints a failure line.
func (c *Console) Error(msg string) {
	fmt.Fprintf(c.Out, "%s%s\n", c.emojiPrefix("❌"), msg)
}

func (c *Console) emojiPrefix(emoji string) string {
	if !c.EmojiEnabled || emoji == "" {
		return ""
	}
	return emoji + " "
}

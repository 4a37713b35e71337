package tui

import "github.com/atotto/clipboard"

// SystemClipboard writes yanked text through the OS clipboard utilities.
type SystemClipboard struct{}

// WriteText copies text to the system clipboard.
func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

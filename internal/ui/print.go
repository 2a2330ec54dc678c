package ui

import (
	"fmt"
	"os"
	"strings"
)

// Line prints an indented status line led by an already styled icon.
func Line(icon, msg string) {
	fmt.Printf("  %s %s\n", icon, msg)
}

// Err prints an error message to stderr.
func Err(msg string) {
	fmt.Fprintln(os.Stderr, Error.Bold(true).Render(IconError+msg))
}

// Ok prints a success message.
func Ok(msg string) {
	fmt.Println(Success.Render(IconOk + msg))
}

// Header prints a section header.
func Header(s string) {
	fmt.Println()
	fmt.Println(Title.Render(s))
	fmt.Println(Muted.Render(strings.Repeat("─", len(s)+2)))
}

// Tip prints a muted hint after a blank line.
func Tip(msg string) {
	fmt.Println()
	fmt.Println(Muted.Render("  tip: " + msg))
}

// TipRun is Tip for a hint that starts with a command to run.
func TipRun(command, rest string) {
	Tip(Accent.Render(command) + " " + rest)
}

// Kv prints a key-value pair, padded.
func Kv(key string, value string) {
	k := KeyStyle.Render(fmt.Sprintf("  %-12s", key))
	fmt.Printf("%s %s\n", k, ValueStyle.Render(value))
}

// Greet returns the dashboard greeting.
func Greet(name string) string {
	if name == "" {
		return IconTally + "Keep the tally going!"
	}
	return fmt.Sprintf("%sKeep it going, %s!", IconTally, name)
}

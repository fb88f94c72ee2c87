package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/finbrief/internal/model"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// previewRunes bounds the body preview in text output
const previewRunes = 120

func writeResult(w io.Writer, res *model.Result, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	case formatText, "":
		return writeResultText(w, res)
	default:
		return fmt.Errorf("unknown output format: %s (supported: text, json)", format)
	}
}

func writeResultText(w io.Writer, res *model.Result) error {
	if len(res.Items) == 0 {
		_, err := fmt.Fprintln(w, "No articles found.")
		return err
	}

	var b strings.Builder
	for i, it := range res.Items {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, it.Title)
		if !it.PublishedAt.IsZero() {
			fmt.Fprintf(&b, "    %s\n", it.PublishedAt.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(&b, "    %s\n", it.Link)
		if text, ok := it.Body.Get(); ok {
			fmt.Fprintf(&b, "    %s\n", preview(text, previewRunes))
		} else if it.Description != "" {
			fmt.Fprintf(&b, "    %s\n", preview(it.Description, previewRunes))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d articles from %s at %s\n", len(res.Items), res.Source, res.FetchedAt.Format("2006-01-02 15:04:05"))

	_, err := io.WriteString(w, b.String())
	return err
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

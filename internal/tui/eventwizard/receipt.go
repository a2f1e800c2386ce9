package eventwizard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/gatherly/organizer/internal/event"
)

// WriteReceipt saves a local markdown record of a submitted event under
// {dir}/receipts and refreshes the index. The receipt is a convenience
// copy; failures here never undo the submission.
func WriteReceipt(dir, id string, d event.DraftEvent) (string, error) {
	receiptDir := filepath.Join(dir, "receipts")
	if err := os.MkdirAll(receiptDir, 0o755); err != nil {
		return "", fmt.Errorf("creating receipt directory: %w", err)
	}

	name := slug.Make(d.Title)
	if name == "" {
		name = "untitled-event"
	}
	path := filepath.Join(receiptDir, name+".md")

	content := receiptContent(id, d, time.Now())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing receipt: %w", err)
	}

	if err := writeReceiptIndex(receiptDir); err != nil {
		return "", fmt.Errorf("updating receipt index: %w", err)
	}
	return path, nil
}

func receiptContent(id string, d event.DraftEvent, now time.Time) string {
	var b strings.Builder
	b.WriteString(summaryMarkdown(d))
	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, "- Event ID: `%s`\n", id)
	fmt.Fprintf(&b, "- Submitted: %s\n", now.Format(time.RFC3339))
	return b.String()
}

// writeReceiptIndex regenerates README.md with a link per receipt.
func writeReceiptIndex(receiptDir string) error {
	entries, err := os.ReadDir(receiptDir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == "README.md" || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("# Submitted Events\n\n")
	if len(names) == 0 {
		b.WriteString("No receipts yet.\n")
	}
	for _, name := range names {
		title := strings.TrimSuffix(name, ".md")
		fmt.Fprintf(&b, "- [%s](%s)\n", title, name)
	}

	return os.WriteFile(filepath.Join(receiptDir, "README.md"), []byte(b.String()), 0o644)
}

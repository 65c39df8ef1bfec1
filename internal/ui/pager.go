package ui

import (
	"fmt"

	"github.com/nhle/shift-handover/internal/theme"
)

// PageFooter renders "page x / y (n items)" plus the paging keys that
// currently apply.
func PageFooter(page, totalPages, total int, hasPrev, hasNext bool) string {
	if totalPages == 0 {
		totalPages = 1
	}
	text := fmt.Sprintf("ページ %d / %d  (%d件)", page, totalPages, total)
	if hasPrev {
		text += "  [ 前へ"
	}
	if hasNext {
		text += "  ] 次へ"
	}
	return theme.HelpStyle.Render(text)
}

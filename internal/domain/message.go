package domain

import (
	"fmt"
	"strings"
	"time"
)

// KST is the timezone all user-facing timestamps are rendered in.
var KST = time.FixedZone("KST", 9*60*60)

// postedAtLayout renders like "2026년 3월 5일 14시 07분 09초".
const postedAtLayout = "2006년 1월 2일 15시 04분 05초"

// NotificationText formats the Telegram message body for one listing.
// parse_mode is HTML on the sending side, so the title is bolded.
func NotificationText(l *Listing) string {
	postedAt := ""
	if l.PostedAt != nil {
		postedAt = l.PostedAt.In(KST).Format(postedAtLayout)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔔 <b>%s</b>\n", l.Title)
	fmt.Fprintf(&b, "가격: %d원\n", l.Price)
	fmt.Fprintf(&b, "동네: %s\n", l.Location)
	fmt.Fprintf(&b, "검색 키워드: %s\n", l.SearchKeyword)
	fmt.Fprintf(&b, "게시글 업로드 시간: %s\n", postedAt)
	fmt.Fprintf(&b, "상세 설명: %s\n", l.Description)
	fmt.Fprintf(&b, "구매 URL: %s", l.URL)
	return b.String()
}

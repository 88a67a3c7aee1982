package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotificationText(t *testing.T) {
	postedAt := time.Date(2026, 3, 5, 14, 7, 9, 0, KST)
	l := &Listing{
		ID:            "a1",
		Title:         "로드 자전거",
		Description:   "거의 새것",
		Price:         150000,
		Location:      "서울특별시",
		SearchKeyword: "자전거",
		URL:           "https://www.daangn.com/kr/buy-sell/a1",
		PostedAt:      &postedAt,
	}

	text := NotificationText(l)

	assert.Contains(t, text, "🔔 <b>로드 자전거</b>")
	assert.Contains(t, text, "가격: 150000원")
	assert.Contains(t, text, "동네: 서울특별시")
	assert.Contains(t, text, "검색 키워드: 자전거")
	assert.Contains(t, text, "게시글 업로드 시간: 2026년 3월 5일 14시 07분 09초")
	assert.Contains(t, text, "구매 URL: https://www.daangn.com/kr/buy-sell/a1")
}

func TestNotificationTextConvertsToKST(t *testing.T) {
	// 05:00 UTC is 14:00 KST.
	postedAt := time.Date(2026, 3, 5, 5, 0, 0, 0, time.UTC)
	l := &Listing{Title: "의자", PostedAt: &postedAt}

	assert.Contains(t, NotificationText(l), "14시 00분 00초")
}

func TestNotificationTextMissingTimestamp(t *testing.T) {
	l := &Listing{Title: "의자"}

	assert.Contains(t, NotificationText(l), "게시글 업로드 시간: \n")
}

func TestListingRecency(t *testing.T) {
	cutoff := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	after := cutoff.Add(time.Second)
	before := cutoff.Add(-time.Second)

	tests := []struct {
		name      string
		postedAt  *time.Time
		wantAfter bool
		wantSince bool
	}{
		{"after cutoff", &after, true, true},
		{"before cutoff", &before, false, false},
		{"exactly at cutoff", &cutoff, false, true},
		{"no timestamp", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Listing{PostedAt: tt.postedAt}
			assert.Equal(t, tt.wantAfter, l.PostedAfter(cutoff))
			assert.Equal(t, tt.wantSince, l.PostedSince(cutoff))
		})
	}
}

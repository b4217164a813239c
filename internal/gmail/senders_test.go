package gmail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/inboxtriage/internal/triage"
)

func info(id, name, email string, read bool, day int, size int64) MessageInfo {
	return MessageInfo{
		Message: triage.EmailMessage{
			ID:        id,
			IsRead:    read,
			Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
			SizeBytes: triage.Int64(size),
		},
		SenderName:  name,
		SenderEmail: email,
	}
}

func TestNoiseScore(t *testing.T) {
	tests := []struct {
		name       string
		frequency  float64
		engagement float64
		marketing  bool
		trusted    bool
		expected   float64
	}{
		{"maximum", 60, 0, true, false, 10},
		{"minimum", 0, 100, false, false, 0},
		{"daily newsletter never read", 30, 0, false, false, 8},
		{"half engaged weekly marketing", 4, 50, true, false, 4.5},
		{"trusted halves", 30, 0, true, true, 5},
		{"engagement out of range is clamped", 0, 150, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NoiseScore(tt.frequency, tt.engagement, tt.marketing, tt.trusted), 0.01)
		})
	}
}

func TestTrustList(t *testing.T) {
	tl := NewTrustList([]string{"Boss@Corp.example", "@family.example", " ", ""})

	assert.True(t, tl.Trusted("boss@corp.example"))
	assert.True(t, tl.Trusted("MOM@family.example"))
	assert.False(t, tl.Trusted("other@corp.example"))
	assert.False(t, tl.Trusted("no-at-sign"))
	assert.False(t, NewTrustList(nil).Trusted("boss@corp.example"))
}

func TestAggregateSenders(t *testing.T) {
	shop1 := info("1", "ShopMart", "deals@shop.example", false, 0, 1000)
	shop1.ListUnsubscribe = "<mailto:unsub@shop.example>"
	shop2 := info("2", "", "deals@shop.example", false, 30, 2000)
	shop2.OneClickUnsubscribe = true
	shop3 := info("3", "ShopMart Deals", "deals@shop.example", true, 59, 3000)
	boss := info("4", "Boss", "boss@corp.example", true, 60, 500)
	digest := info("5", "Digest", "digest@news.example", false, 10, 700)
	digest.Bulk = true
	unknown := info("6", "", "", false, 20, 10)

	senders := AggregateSenders([]MessageInfo{shop1, shop2, shop3, boss, digest, unknown}, NewTrustList([]string{"@corp.example"}))
	require.Len(t, senders, 3)

	shop := senders[0]
	assert.Equal(t, "deals@shop.example", shop.ID)
	assert.Equal(t, "deals@shop.example", shop.Email)
	assert.Equal(t, "ShopMart", shop.DisplayName)
	assert.Equal(t, 3, shop.EmailCount)
	assert.Equal(t, int64(6000), shop.TotalSize)
	assert.InDelta(t, 33.3, shop.EngagementRate, 0.01)
	assert.InDelta(t, 1.5, shop.FrequencyPerMonth, 0.01, "3 mails over a 60 day window")
	assert.True(t, shop.IsMarketing)
	assert.True(t, shop.HasUnsubscribe)
	assert.False(t, shop.IsTrusted)
	require.NotNil(t, shop.NoiseScore)
	assert.Equal(t, NoiseScore(1.5, 33.3, true, false), *shop.NoiseScore)

	assert.Equal(t, "boss@corp.example", senders[1].Email, "ties ordered by address")
	assert.True(t, senders[1].IsTrusted)
	assert.False(t, senders[1].IsMarketing)
	assert.InDelta(t, 100, senders[1].EngagementRate, 0.01)

	assert.Equal(t, "digest@news.example", senders[2].Email)
	assert.True(t, senders[2].IsMarketing)
	assert.False(t, senders[2].HasUnsubscribe)
}

func TestAggregateSenders_ShortWindow(t *testing.T) {
	senders := AggregateSenders([]MessageInfo{
		info("1", "", "a@example.com", true, 0, 1),
		info("2", "", "a@example.com", true, 1, 1),
	}, TrustList{})

	require.Len(t, senders, 1)
	assert.InDelta(t, 2, senders[0].FrequencyPerMonth, 0.01, "window is at least one month")
}

func TestAggregateSenders_Empty(t *testing.T) {
	assert.Empty(t, AggregateSenders(nil, TrustList{}))
}

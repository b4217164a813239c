package gmail

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/teemow/inboxtriage/internal/triage"
)

// daysPerMonth converts the observation window into months.
const daysPerMonth = 30.0

// NoiseScore rates how noisy a sender is on a 0 to 10 scale. Volume and
// disengagement contribute up to 4 points each, marketing mail 2 more.
// Trusted senders get half the score.
func NoiseScore(frequencyPerMonth, engagementRate float64, marketing, trusted bool) float64 {
	volume := math.Min(frequencyPerMonth/30, 1) * 4
	disengagement := (100 - math.Max(0, math.Min(engagementRate, 100))) / 100 * 4
	score := volume + disengagement
	if marketing {
		score += 2
	}
	if trusted {
		score /= 2
	}
	return round1(math.Max(0, math.Min(score, 10)))
}

// TrustList matches sender addresses against configured entries. An
// entry starting with "@" matches a whole domain.
type TrustList struct {
	addresses map[string]bool
	domains   map[string]bool
}

// NewTrustList builds a TrustList from addresses and "@domain" entries.
func NewTrustList(entries []string) TrustList {
	tl := TrustList{addresses: map[string]bool{}, domains: map[string]bool{}}
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		switch {
		case e == "":
		case strings.HasPrefix(e, "@"):
			tl.domains[e[1:]] = true
		default:
			tl.addresses[e] = true
		}
	}
	return tl
}

// Trusted reports whether the address is trusted.
func (tl TrustList) Trusted(email string) bool {
	email = strings.ToLower(email)
	if tl.addresses[email] {
		return true
	}
	if at := strings.LastIndex(email, "@"); at >= 0 {
		return tl.domains[email[at+1:]]
	}
	return false
}

// AggregateSenders builds per-sender statistics from converted messages.
// Frequencies are computed over the window spanned by all message dates,
// at least one month. Senders are ordered by volume, then address.
func AggregateSenders(infos []MessageInfo, trust TrustList) []triage.Sender {
	months := observedMonths(infos)
	groups := lo.GroupBy(
		lo.Filter(infos, func(i MessageInfo, _ int) bool { return i.SenderEmail != "" }),
		func(i MessageInfo) string { return i.SenderEmail },
	)

	senders := make([]triage.Sender, 0, len(groups))
	for email, group := range groups {
		count := len(group)
		read := lo.CountBy(group, func(i MessageInfo) bool { return i.Message.IsRead })
		engagement := round1(float64(read) / float64(count) * 100)
		frequency := round1(float64(count) / months)
		marketing := lo.SomeBy(group, func(i MessageInfo) bool { return i.ListUnsubscribe != "" || i.Bulk })
		trusted := trust.Trusted(email)

		name, _ := lo.Find(group, func(i MessageInfo) bool { return i.SenderName != "" })
		senders = append(senders, triage.Sender{
			ID:                email,
			DisplayName:       name.SenderName,
			Email:             email,
			EmailCount:        count,
			TotalSize:         lo.SumBy(group, func(i MessageInfo) int64 { return i.Message.Size() }),
			FrequencyPerMonth: frequency,
			NoiseScore:        triage.Float64(NoiseScore(frequency, engagement, marketing, trusted)),
			EngagementRate:    engagement,
			IsMarketing:       marketing,
			IsTrusted:         trusted,
			HasUnsubscribe:    lo.SomeBy(group, func(i MessageInfo) bool { return i.OneClickUnsubscribe }),
		})
	}

	slices.SortFunc(senders, func(a, b triage.Sender) int {
		if c := cmp.Compare(b.EmailCount, a.EmailCount); c != 0 {
			return c
		}
		return cmp.Compare(a.Email, b.Email)
	})
	return senders
}

func observedMonths(infos []MessageInfo) float64 {
	var first, last time.Time
	for _, i := range infos {
		d := i.Message.Date
		if d.IsZero() {
			continue
		}
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	days := last.Sub(first).Hours() / 24
	return math.Max(days/daysPerMonth, 1)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

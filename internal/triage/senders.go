package triage

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// SenderFilter selects which senders a sender view shows.
type SenderFilter string

// Sender filter modes.
const (
	SenderFilterAll        SenderFilter = "all"
	SenderFilterMarketing  SenderFilter = "marketing"
	SenderFilterHighNoise  SenderFilter = "high-noise"
	SenderFilterTrusted    SenderFilter = "trusted"
	SenderFilterUnread     SenderFilter = "unread"
	SenderFilterLargeFiles SenderFilter = "large-files"
)

// SenderSort orders a sender view.
type SenderSort string

// Sender sort modes. All are descending except SenderSortEngagement,
// which surfaces the least engaged senders first.
const (
	SenderSortNoise      SenderSort = "noise"
	SenderSortVolume     SenderSort = "volume"
	SenderSortSize       SenderSort = "size"
	SenderSortEngagement SenderSort = "engagement"
)

// Thresholds used by the sender filters.
const (
	HighNoiseThreshold       = 7.0
	LowEngagementThreshold   = 50.0
	LargeFilesThresholdBytes = 500_000_000
)

// AllSenderFilters lists the supported filter modes.
var AllSenderFilters = []SenderFilter{
	SenderFilterAll, SenderFilterMarketing, SenderFilterHighNoise,
	SenderFilterTrusted, SenderFilterUnread, SenderFilterLargeFiles,
}

// AllSenderSorts lists the supported sort modes.
var AllSenderSorts = []SenderSort{
	SenderSortNoise, SenderSortVolume, SenderSortSize, SenderSortEngagement,
}

// Matches reports whether a sender passes the filter. Unknown modes keep
// every sender, like SenderFilterAll.
func (f SenderFilter) Matches(s Sender) bool {
	switch f {
	case SenderFilterMarketing:
		return s.IsMarketing
	case SenderFilterHighNoise:
		return s.NoiseScore != nil && *s.NoiseScore >= HighNoiseThreshold
	case SenderFilterTrusted:
		return s.IsTrusted
	case SenderFilterUnread:
		return s.EngagementRate < LowEngagementThreshold
	case SenderFilterLargeFiles:
		return s.TotalSize > LargeFilesThresholdBytes
	default:
		return true
	}
}

// Compare orders two senders for the sort mode. Unknown modes fall back
// to noise ordering.
func (o SenderSort) Compare(a, b Sender) int {
	switch o {
	case SenderSortVolume:
		return cmp.Compare(b.EmailCount, a.EmailCount)
	case SenderSortSize:
		return cmp.Compare(b.TotalSize, a.TotalSize)
	case SenderSortEngagement:
		return cmp.Compare(a.EngagementRate, b.EngagementRate)
	default:
		return cmp.Compare(b.Noise(), a.Noise())
	}
}

// FilterSenders applies the filter, then the search, then the sort. The
// input slice is left untouched.
func FilterSenders(senders []Sender, filter SenderFilter, search string, sortBy SenderSort) []Sender {
	q := normalizeQuery(search)
	out := lo.Filter(senders, func(s Sender, _ int) bool {
		if !filter.Matches(s) {
			return false
		}
		return containsLower(s.DisplayName, q) || containsLower(s.Email, q)
	})
	slices.SortStableFunc(out, sortBy.Compare)
	return out
}

// SenderView holds the controls of a sender list screen: filter, search,
// sort and the set of checked senders.
type SenderView struct {
	Filter   SenderFilter
	Search   string
	Sort     SenderSort
	Selected IDSet
}

// NewSenderView returns a view showing all senders by noise.
func NewSenderView() *SenderView {
	return &SenderView{
		Filter: SenderFilterAll,
		Sort:   SenderSortNoise,
	}
}

// Senders recomputes the visible senders from the full list.
func (v *SenderView) Senders(all []Sender) []Sender {
	return FilterSenders(all, v.Filter, v.Search, v.Sort)
}

// ToggleSelection flips the selection state of a sender id.
func (v *SenderView) ToggleSelection(id string) bool {
	return v.Selected.Toggle(id)
}

// SelectedSenders returns the senders from all whose ids are selected,
// in input order.
func (v *SenderView) SelectedSenders(all []Sender) []Sender {
	return lo.Filter(all, func(s Sender, _ int) bool {
		return v.Selected.Contains(s.ID)
	})
}

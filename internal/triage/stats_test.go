package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsMessages() []EmailMessage {
	return []EmailMessage{
		{ID: "1", IsRead: false, SizeBytes: Int64(1000)},
		{ID: "2", IsRead: false},
		{ID: "3", IsRead: true, HasAttachments: true, AttachmentCount: 1, SizeBytes: Int64(5000)},
		{ID: "4", IsRead: false, HasAttachments: true, AttachmentCount: 2, Attachments: []Attachment{{Filename: "a.pdf", Size: 700}, {Filename: "b.png", Size: 300}}},
		{ID: "5", IsRead: true, HasAttachments: true, AttachmentCount: 0, SizeBytes: Int64(9000)},
		{ID: "6", IsRead: true, HasAttachments: true, AttachmentCount: 3, SizeBytes: Int64(20000)},
		{ID: "7", IsRead: false, HasAttachments: false, AttachmentCount: 1, SizeBytes: Int64(99999)},
	}
}

func statsSenders() []Sender {
	return []Sender{
		{ID: "s1", NoiseScore: Float64(6)},
		{ID: "s2", NoiseScore: Float64(9.5)},
		{ID: "s3", NoiseScore: Float64(5.9)},
		{ID: "s4"},
		{ID: "s5", NoiseScore: Float64(7)},
	}
}

func TestSelectStatData_Unread(t *testing.T) {
	data := SelectStatData(StatUnread, statsMessages(), statsSenders(), NewIDSet("7"))

	assert.Equal(t, []string{"1", "2", "4"}, ids(data.UnreadEmails))
	assert.Equal(t, len(data.UnreadEmails), data.UnreadCount)
	assert.Empty(t, data.NoisySenders)
	assert.Empty(t, data.EmailsWithFiles)
	assert.Equal(t, 0, data.FilesCount)

	for _, m := range data.UnreadEmails {
		require.NotNil(t, m.SizeBytes, "message %s", m.ID)
	}
	assert.Equal(t, int64(1000), data.UnreadEmails[0].Size())
	assert.Equal(t, DefaultMessageSize, data.UnreadEmails[1].Size())
	assert.Equal(t, int64(1000), data.UnreadEmails[2].Size(), "attachment total")
}

func TestSelectStatData_UnreadDoesNotMutateInput(t *testing.T) {
	in := statsMessages()
	_ = SelectStatData(StatUnread, in, nil, IDSet{})
	assert.Nil(t, in[1].SizeBytes)
}

func TestSelectStatData_UnreadFallsBackToDemo(t *testing.T) {
	data := SelectStatData(StatUnread, nil, nil, NewIDSet("demo-1"))

	require.NotEmpty(t, data.UnreadEmails)
	for _, m := range data.UnreadEmails {
		assert.False(t, m.IsRead)
		assert.NotEqual(t, "demo-1", m.ID)
		assert.NotNil(t, m.SizeBytes)
	}
	assert.Equal(t, len(data.UnreadEmails), data.UnreadCount)
}

func TestSelectStatData_Noise(t *testing.T) {
	data := SelectStatData(StatNoise, statsMessages(), statsSenders(), IDSet{})

	assert.Equal(t, []string{"s2", "s5", "s1"}, senderIDs(data.NoisySenders))
	assert.Empty(t, data.UnreadEmails)
	assert.Empty(t, data.EmailsWithFiles)
}

func TestSelectStatData_NoiseFallsBackToDemo(t *testing.T) {
	data := SelectStatData(StatNoise, nil, nil, IDSet{})

	require.NotEmpty(t, data.NoisySenders)
	for i, s := range data.NoisySenders {
		require.NotNil(t, s.NoiseScore)
		assert.GreaterOrEqual(t, *s.NoiseScore, NoisySenderThreshold)
		if i > 0 {
			assert.GreaterOrEqual(t, data.NoisySenders[i-1].Noise(), s.Noise())
		}
	}
}

func TestSelectStatData_Files(t *testing.T) {
	data := SelectStatData(StatFiles, statsMessages(), statsSenders(), NewIDSet("3"))

	assert.Equal(t, []string{"6", "4"}, ids(data.EmailsWithFiles))
	assert.Equal(t, len(data.EmailsWithFiles), data.FilesCount)
	assert.Empty(t, data.UnreadEmails)
	for _, m := range data.EmailsWithFiles {
		assert.NotNil(t, m.SizeBytes)
	}
}

func TestSelectStatData_FilesEmptyLiveStaysEmpty(t *testing.T) {
	data := SelectStatData(StatFiles, nil, nil, IDSet{})
	assert.Empty(t, data.EmailsWithFiles)
	assert.Equal(t, 0, data.FilesCount)
}

func TestSelectStatData_UnknownStat(t *testing.T) {
	data := SelectStatData(StatType("bogus"), statsMessages(), statsSenders(), IDSet{})
	assert.Equal(t, NewStatData(nil, nil, nil), data)
	assert.NotNil(t, data.UnreadEmails)
}

func TestSelectStatData_CountsMatchLists(t *testing.T) {
	trashedSets := []IDSet{{}, NewIDSet("1", "4"), NewIDSet("6")}
	messageSets := [][]EmailMessage{nil, statsMessages()}
	for _, stat := range []StatType{StatUnread, StatNoise, StatFiles, "other"} {
		for _, messages := range messageSets {
			for _, trashed := range trashedSets {
				data := SelectStatData(stat, messages, statsSenders(), trashed)
				assert.Equal(t, len(data.UnreadEmails), data.UnreadCount)
				assert.Equal(t, len(data.EmailsWithFiles), data.FilesCount)
			}
		}
	}
}

func TestStatSelector_CustomNormalizerDrops(t *testing.T) {
	sel := StatSelector{
		Normalizer: SizeNormalizerFunc(func(m EmailMessage) (EmailMessage, bool) {
			return m, m.SizeBytes != nil
		}),
	}
	data := sel.Select(StatUnread, statsMessages(), nil, IDSet{})
	assert.Equal(t, []string{"1", "7"}, ids(data.UnreadEmails))
	assert.Equal(t, 2, data.UnreadCount)
}

func TestStatSelector_DemoMode(t *testing.T) {
	sel := StatSelector{DemoMode: true}
	data := sel.Select(StatFiles, statsMessages(), nil, IDSet{})

	require.NotEmpty(t, data.EmailsWithFiles)
	for _, m := range data.EmailsWithFiles {
		assert.Contains(t, m.ID, "demo-")
	}
}

package triage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		snippet  string
		from     string
		expected Category
	}{
		{
			name:     "flight booking is travel",
			subject:  "Flight Booking Confirmation",
			from:     "a@x.com",
			expected: CategoryTravel,
		},
		{
			name:     "invoice in subject",
			subject:  "Your INVOICE for March",
			expected: CategoryInvoices,
		},
		{
			name:     "keyword in snippet",
			subject:  "Hello",
			snippet:  "Thank you for your order, here is your receipt",
			expected: CategoryReceipts,
		},
		{
			name:     "keyword in sender",
			subject:  "You have a new notification",
			from:     "LinkedIn <messages@linkedin.com>",
			expected: CategorySocial,
		},
		{
			name:     "earlier category wins on multiple matches",
			subject:  "Invoice for your hotel booking",
			expected: CategoryInvoices,
		},
		{
			name:     "no match",
			subject:  "Quick question",
			snippet:  "Do you have a minute?",
			from:     "bob@example.com",
			expected: CategoryNone,
		},
		{
			name:     "empty fields",
			expected: CategoryNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Categorize(tt.subject, tt.snippet, tt.from))
		})
	}
}

func TestCategorize_ResultKeywordOccursInText(t *testing.T) {
	c := DefaultClassifier()
	inputs := [][3]string{
		{"Payroll update", "", "hr@corp.example"},
		{"Your order has shipped", "", ""},
		{"Privacy policy changes", "We updated our terms of service", "legal@site.example"},
		{"Weekly newsletter", "20% off this week", "news@shop.example"},
		{"Nothing to see", "", ""},
	}
	for _, in := range inputs {
		got := c.Classify(in[0], in[1], in[2])
		text := strings.ToLower(in[0] + " " + in[1] + " " + in[2])
		if got == CategoryNone {
			for _, r := range c.Rules() {
				for _, kw := range r.Keywords {
					assert.NotContains(t, text, kw)
				}
			}
			continue
		}
		matched := false
		for _, kw := range c.Keywords(got) {
			if strings.Contains(text, kw) {
				matched = true
			}
		}
		assert.True(t, matched, "category %s returned without a matching keyword for %v", got, in)
	}
}

func TestNewClassifier_CustomOrder(t *testing.T) {
	c := NewClassifier([]CategoryRule{
		{Category: CategoryTravel, Keywords: []string{"Hotel", "  "}},
		{Category: CategoryInvoices, Keywords: []string{"invoice"}},
	})

	assert.Equal(t, CategoryTravel, c.Classify("Invoice for your hotel booking", "", ""))
	assert.Equal(t, []string{"hotel"}, c.Keywords(CategoryTravel))
	assert.Nil(t, c.Keywords(CategorySystem))
}

func TestClassifier_RulesReturnsCopy(t *testing.T) {
	c := DefaultClassifier()
	rules := c.Rules()
	require.Len(t, rules, len(AllCategories))
	rules[0].Keywords[0] = "mutated"

	assert.NotEqual(t, "mutated", c.Rules()[0].Keywords[0])
}

func TestDefaultCategoryRules_Order(t *testing.T) {
	rules := DefaultCategoryRules()
	require.Len(t, rules, len(AllCategories))
	for i, r := range rules {
		assert.Equal(t, AllCategories[i], r.Category)
		assert.NotEmpty(t, r.Keywords)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Travel ")
	require.NoError(t, err)
	assert.Equal(t, CategoryTravel, c)

	_, err = ParseCategory("finance")
	assert.Error(t, err)
}

func TestClassifyMessage(t *testing.T) {
	m := EmailMessage{Subject: "Security alert", Snippet: "password reset requested"}
	assert.Equal(t, CategorySystem, DefaultClassifier().ClassifyMessage(m))
}

package triage

import (
	"fmt"
	"strings"
)

// Category is a fixed email category label.
type Category string

// Supported categories. CategoryNone means no keyword matched.
const (
	CategoryNone       Category = ""
	CategoryInvoices   Category = "invoices"
	CategoryReceipts   Category = "receipts"
	CategoryTravel     Category = "travel"
	CategoryHR         Category = "hr"
	CategoryLegal      Category = "legal"
	CategoryPersonal   Category = "personal"
	CategoryPromotions Category = "promotions"
	CategorySocial     Category = "social"
	CategorySystem     Category = "system"
)

// AllCategories lists every category in default precedence order.
var AllCategories = []Category{
	CategoryInvoices,
	CategoryReceipts,
	CategoryTravel,
	CategoryHR,
	CategoryLegal,
	CategoryPersonal,
	CategoryPromotions,
	CategorySocial,
	CategorySystem,
}

// ParseCategory validates a category name.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllCategories {
		if c == known {
			return c, nil
		}
	}
	return CategoryNone, fmt.Errorf("unknown category %q", name)
}

// CategoryRule binds a category to the keywords that select it.
type CategoryRule struct {
	Category Category
	Keywords []string
}

// DefaultCategoryRules returns the built-in rules in precedence order.
// A fresh slice is returned on every call.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{CategoryInvoices, []string{"invoice", "billing statement", "amount due", "payment due", "bill is ready", "overdue"}},
		{CategoryReceipts, []string{"receipt", "order confirmation", "your order", "payment received", "purchase", "thank you for your order"}},
		{CategoryTravel, []string{"flight", "booking", "itinerary", "boarding pass", "hotel", "reservation", "airline", "check-in"}},
		{CategoryHR, []string{"payroll", "human resources", "benefits enrollment", "onboarding", "performance review", "time off request", "payslip"}},
		{CategoryLegal, []string{"contract", "agreement", "terms of service", "privacy policy", "legal", "non-disclosure", "compliance"}},
		{CategoryPersonal, []string{"family", "birthday", "dinner", "weekend plans", "catch up", "congratulations"}},
		{CategoryPromotions, []string{"% off", "discount", "promo", "limited time", "coupon", "newsletter", "special offer", "flash sale"}},
		{CategorySocial, []string{"linkedin", "facebook", "twitter", "instagram", "friend request", "mentioned you", "new follower"}},
		{CategorySystem, []string{"password reset", "security alert", "verify your", "verification code", "sign-in attempt", "account notification"}},
	}
}

// Classifier assigns at most one category to an email by keyword
// matching. The first rule with a matching keyword wins.
type Classifier struct {
	rules []CategoryRule
}

// NewClassifier creates a classifier from ordered rules. Keywords are
// lowercased once here; empty keywords are skipped.
func NewClassifier(rules []CategoryRule) *Classifier {
	normalized := make([]CategoryRule, 0, len(rules))
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = lower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		normalized = append(normalized, CategoryRule{Category: r.Category, Keywords: kws})
	}
	return &Classifier{rules: normalized}
}

// DefaultClassifier returns a classifier using DefaultCategoryRules.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultCategoryRules())
}

// Rules returns a copy of the classifier's rules in precedence order.
func (c *Classifier) Rules() []CategoryRule {
	out := make([]CategoryRule, len(c.rules))
	for i, r := range c.rules {
		out[i] = CategoryRule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Classify returns the first category whose keywords occur in the
// lowercased subject, snippet and sender, or CategoryNone.
func (c *Classifier) Classify(subject, snippet, from string) Category {
	text := lower(subject + " " + snippet + " " + from)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(text, kw) {
				return r.Category
			}
		}
	}
	return CategoryNone
}

// ClassifyMessage classifies a message by its subject, snippet and sender.
func (c *Classifier) ClassifyMessage(m EmailMessage) Category {
	return c.Classify(m.Subject, m.Snippet, m.From)
}

// Keywords returns the keywords configured for a category, or nil.
func (c *Classifier) Keywords(cat Category) []string {
	for _, r := range c.rules {
		if r.Category == cat {
			return append([]string(nil), r.Keywords...)
		}
	}
	return nil
}

var defaultClassifier = DefaultClassifier()

// Categorize classifies an email using the default rules.
func Categorize(subject, snippet, from string) Category {
	return defaultClassifier.Classify(subject, snippet, from)
}

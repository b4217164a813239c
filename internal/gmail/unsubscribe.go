package gmail

import (
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// UnsubscribeInfo contains information about how to unsubscribe from a sender
type UnsubscribeInfo struct {
	MessageID      string
	HasUnsubscribe bool
	OneClick       bool
	Methods        []UnsubscribeMethod
}

// UnsubscribeMethod represents a single unsubscribe method
type UnsubscribeMethod struct {
	Type string // "mailto" or "http"
	URL  string
}

// GetUnsubscribeInfo extracts List-Unsubscribe information from a message
func GetUnsubscribeInfo(msg *gmail.Message) *UnsubscribeInfo {
	info := &UnsubscribeInfo{
		MessageID: msg.Id,
		Methods:   []UnsubscribeMethod{},
	}

	listUnsubscribe := HeaderValue(msg, "List-Unsubscribe")
	if listUnsubscribe == "" {
		return info
	}

	info.HasUnsubscribe = true
	info.OneClick = strings.Contains(strings.ToLower(HeaderValue(msg, "List-Unsubscribe-Post")), "one-click")
	if methods := ParseListUnsubscribe(listUnsubscribe); methods != nil {
		info.Methods = methods
	}
	return info
}

// ParseListUnsubscribe parses the List-Unsubscribe header value.
//
// Format: <mailto:unsub@example.com>, <http://example.com/unsub>
func ParseListUnsubscribe(header string) []UnsubscribeMethod {
	var methods []UnsubscribeMethod

	for _, part := range strings.Split(header, "<") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		endIdx := strings.Index(part, ">")
		if endIdx == -1 {
			continue
		}

		url := strings.TrimSpace(part[:endIdx])
		lowerURL := strings.ToLower(url)
		switch {
		case strings.HasPrefix(lowerURL, "mailto:"):
			methods = append(methods, UnsubscribeMethod{Type: "mailto", URL: url})
		case strings.HasPrefix(lowerURL, "http://"), strings.HasPrefix(lowerURL, "https://"):
			methods = append(methods, UnsubscribeMethod{Type: "http", URL: url})
		}
	}

	return methods
}

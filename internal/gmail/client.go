package gmail

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/teemow/inboxtriage/internal/google"
)

// maxPageSize is the largest page the Gmail API returns for message lists.
const maxPageSize = 500

// maxPartDepth is how many levels of nested MIME parts are requested below
// the payload. Attachments nested deeper than this are not counted.
const maxPartDepth = 8

// messageFields limits message fetches to what triage reads. Bodies are
// never downloaded.
var messageFields = googleapi.Field("id,threadId,labelIds,snippet,internalDate,sizeEstimate," +
	"payload(headers,filename,mimeType,body/size" + nestedPartsMask(maxPartDepth) + ")")

// nestedPartsMask returns the partial response selector for depth levels
// of parts.
func nestedPartsMask(depth int) string {
	if depth <= 0 {
		return ""
	}
	return ",parts(filename,mimeType,body/size" + nestedPartsMask(depth-1) + ")"
}

// messageAPI is the subset of the Gmail Users.Messages service used here.
type messageAPI interface {
	List(ctx context.Context, q, pageToken string, pageSize int64) (*gmail.ListMessagesResponse, error)
	Get(ctx context.Context, id string) (*gmail.Message, error)
}

type usersAPI struct {
	svc *gmail.UsersService
}

func (u usersAPI) List(ctx context.Context, q, pageToken string, pageSize int64) (*gmail.ListMessagesResponse, error) {
	req := u.svc.Messages.List("me").Q(q).MaxResults(pageSize).IncludeSpamTrash(true).Context(ctx)
	if pageToken != "" {
		req = req.PageToken(pageToken)
	}
	return req.Do()
}

func (u usersAPI) Get(ctx context.Context, id string) (*gmail.Message, error) {
	return u.svc.Messages.Get("me", id).Format("full").Fields(messageFields).Context(ctx).Do()
}

// Client is a read-only Gmail client for one account.
type Client struct {
	api     messageAPI
	account string
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// NewClientForAccount creates a Gmail client authenticated through tokens.
func NewClientForAccount(ctx context.Context, account string, tokens google.TokenProvider) (*Client, error) {
	httpClient, err := tokens.HTTPClient(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", google.GetAuthenticationErrorMessage(account), err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{api: usersAPI{svc: svc.Users}, account: account}, nil
}

// ListMessageIDs lists the ids of messages matching q, newest first.
// It will fetch up to maxResults ids, making multiple API calls if necessary.
func (c *Client) ListMessageIDs(ctx context.Context, q string, maxResults int64) ([]string, error) {
	var ids []string
	pageToken := ""

	for {
		remaining := maxResults - int64(len(ids))
		if remaining <= 0 {
			break
		}
		pageSize := min(remaining, maxPageSize)

		res, err := c.api.List(ctx, q, pageToken, pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		for _, m := range res.Messages {
			ids = append(ids, m.Id)
		}

		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	if int64(len(ids)) > maxResults {
		ids = ids[:maxResults]
	}
	return ids, nil
}

// GetMessage retrieves the metadata and part structure of a message.
func (c *Client) GetMessage(ctx context.Context, id string) (*gmail.Message, error) {
	msg, err := c.api.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}
	return msg, nil
}

// FetchMessages lists up to maxResults messages matching q and fetches
// them with at most concurrency requests in flight. The result keeps the
// list order.
func (c *Client) FetchMessages(ctx context.Context, q string, maxResults int64, concurrency int) ([]*gmail.Message, error) {
	ids, err := c.ListMessageIDs(ctx, q, maxResults)
	if err != nil {
		return nil, err
	}

	messages := make([]*gmail.Message, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, id := range ids {
		g.Go(func() error {
			msg, err := c.GetMessage(gctx, id)
			if err != nil {
				return err
			}
			messages[i] = msg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return messages, nil
}

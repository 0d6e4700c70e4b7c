package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/iam"
)

// iamAPI is the minimal IAM interface required by Client.
type iamAPI interface {
	ListAccountAliases(ctx context.Context, in *iam.ListAccountAliasesInput, optFns ...func(*iam.Options)) (*iam.ListAccountAliasesOutput, error)
}

// Client looks up the display alias of the current AWS account.
type Client struct {
	api iamAPI
}

func New(api iamAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("account: api must not be nil")
	}
	return &Client{api: api}, nil
}

// Alias returns the first alias registered for the account, or "" when the
// account has none.
func (c *Client) Alias(ctx context.Context) (string, error) {
	out, err := c.api.ListAccountAliases(ctx, &iam.ListAccountAliasesInput{})
	if err != nil {
		return "", fmt.Errorf("account: list account aliases: %w", err)
	}
	if out == nil || len(out.AccountAliases) == 0 {
		return "", nil
	}
	return out.AccountAliases[0], nil
}

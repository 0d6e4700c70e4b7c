package searchservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	es "github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"

	"es-update-notifier/internal/domain"
)

// ErrNoSoftwareOptions is returned when a domain status carries no service
// software information.
var ErrNoSoftwareOptions = errors.New("searchservice: domain has no service software options")

// esAPI is the minimal Elasticsearch Service interface required by Client.
// *elasticsearchservice.Client satisfies this interface.
type esAPI interface {
	ListDomainNames(ctx context.Context, in *es.ListDomainNamesInput, optFns ...func(*es.Options)) (*es.ListDomainNamesOutput, error)
	DescribeElasticsearchDomain(ctx context.Context, in *es.DescribeElasticsearchDomainInput, optFns ...func(*es.Options)) (*es.DescribeElasticsearchDomainOutput, error)
}

// Client lists search domains in the configured region and reports their
// service software status.
type Client struct {
	api esAPI
}

func New(api esAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("searchservice: api must not be nil")
	}
	return &Client{api: api}, nil
}

// ListDomainNames returns domain names in the order the service lists them.
func (c *Client) ListDomainNames(ctx context.Context) ([]string, error) {
	out, err := c.api.ListDomainNames(ctx, &es.ListDomainNamesInput{})
	if err != nil {
		return nil, fmt.Errorf("searchservice: list domain names: %w", err)
	}
	if out == nil {
		return nil, nil
	}
	names := make([]string, 0, len(out.DomainNames))
	for _, info := range out.DomainNames {
		name := strings.TrimSpace(aws.ToString(info.DomainName))
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// DescribeDomain fetches the current and candidate software versions of a
// domain.
func (c *Client) DescribeDomain(ctx context.Context, name string) (domain.Domain, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Domain{}, errors.New("searchservice: domain name is required")
	}
	out, err := c.api.DescribeElasticsearchDomain(ctx, &es.DescribeElasticsearchDomainInput{
		DomainName: aws.String(name),
	})
	if err != nil {
		return domain.Domain{}, fmt.Errorf("searchservice: describe domain %q: %w", name, err)
	}
	if out == nil || out.DomainStatus == nil || out.DomainStatus.ServiceSoftwareOptions == nil {
		return domain.Domain{}, fmt.Errorf("%w: %s", ErrNoSoftwareOptions, name)
	}
	opts := out.DomainStatus.ServiceSoftwareOptions
	return domain.Domain{
		Name:            name,
		CurrentVersion:  aws.ToString(opts.CurrentVersion),
		NewVersion:      aws.ToString(opts.NewVersion),
		UpdateAvailable: aws.ToBool(opts.UpdateAvailable),
	}, nil
}

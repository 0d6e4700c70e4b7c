package searchservice

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	es "github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"

	"es-update-notifier/internal/domain"
)

type fakeES struct {
	listOut      *es.ListDomainNamesOutput
	listErr      error
	describeOut  *es.DescribeElasticsearchDomainOutput
	describeErr  error
	lastDescribe *es.DescribeElasticsearchDomainInput
}

func (f *fakeES) ListDomainNames(_ context.Context, _ *es.ListDomainNamesInput, _ ...func(*es.Options)) (*es.ListDomainNamesOutput, error) {
	return f.listOut, f.listErr
}

func (f *fakeES) DescribeElasticsearchDomain(_ context.Context, in *es.DescribeElasticsearchDomainInput, _ ...func(*es.Options)) (*es.DescribeElasticsearchDomainOutput, error) {
	f.lastDescribe = in
	return f.describeOut, f.describeErr
}

func mustNewClient(t *testing.T, api *fakeES) *Client {
	t.Helper()
	c, err := New(api)
	require.NoError(t, err)
	return c
}

func TestListDomainNames_KeepsOrderAndSkipsBlank(t *testing.T) {
	api := &fakeES{listOut: &es.ListDomainNamesOutput{DomainNames: []types.DomainInfo{
		{DomainName: aws.String("logs-prod")},
		{DomainName: nil},
		{DomainName: aws.String("search-dev")},
	}}}
	names, err := mustNewClient(t, api).ListDomainNames(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"logs-prod", "search-dev"}, names)
}

func TestListDomainNames_Empty(t *testing.T) {
	names, err := mustNewClient(t, &fakeES{listOut: &es.ListDomainNamesOutput{}}).ListDomainNames(context.Background())
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestListDomainNames_Error(t *testing.T) {
	api := &fakeES{listErr: &smithy.GenericAPIError{Code: "AccessDeniedException"}}
	_, err := mustNewClient(t, api).ListDomainNames(context.Background())
	var apiErr smithy.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "AccessDeniedException", apiErr.ErrorCode())
}

func TestDescribeDomain_UpdateAvailable(t *testing.T) {
	api := &fakeES{describeOut: &es.DescribeElasticsearchDomainOutput{DomainStatus: &types.ElasticsearchDomainStatus{
		DomainName: aws.String("logs-prod"),
		ServiceSoftwareOptions: &types.ServiceSoftwareOptions{
			CurrentVersion:  aws.String("6.8"),
			NewVersion:      aws.String("7.10"),
			UpdateAvailable: aws.Bool(true),
		},
	}}}
	d, err := mustNewClient(t, api).DescribeDomain(context.Background(), "logs-prod")
	require.NoError(t, err)
	require.Equal(t, domain.Domain{Name: "logs-prod", CurrentVersion: "6.8", NewVersion: "7.10", UpdateAvailable: true}, d)
	require.Equal(t, "logs-prod", aws.ToString(api.lastDescribe.DomainName))
}

func TestDescribeDomain_NoUpdate(t *testing.T) {
	api := &fakeES{describeOut: &es.DescribeElasticsearchDomainOutput{DomainStatus: &types.ElasticsearchDomainStatus{
		ServiceSoftwareOptions: &types.ServiceSoftwareOptions{CurrentVersion: aws.String("R20240101")},
	}}}
	d, err := mustNewClient(t, api).DescribeDomain(context.Background(), "search-dev")
	require.NoError(t, err)
	require.False(t, d.UpdateAvailable)
	require.Empty(t, d.NewVersion)
}

func TestDescribeDomain_MissingSoftwareOptions(t *testing.T) {
	api := &fakeES{describeOut: &es.DescribeElasticsearchDomainOutput{DomainStatus: &types.ElasticsearchDomainStatus{}}}
	_, err := mustNewClient(t, api).DescribeDomain(context.Background(), "logs-prod")
	require.ErrorIs(t, err, ErrNoSoftwareOptions)
}

func TestDescribeDomain_Error(t *testing.T) {
	api := &fakeES{describeErr: &smithy.GenericAPIError{Code: "ResourceNotFoundException"}}
	_, err := mustNewClient(t, api).DescribeDomain(context.Background(), "gone")
	require.ErrorContains(t, err, "ResourceNotFoundException")
}

func TestDescribeDomain_EmptyName(t *testing.T) {
	_, err := mustNewClient(t, &fakeES{}).DescribeDomain(context.Background(), " ")
	require.ErrorContains(t, err, "required")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.ErrorContains(t, err, "must not be nil")
}

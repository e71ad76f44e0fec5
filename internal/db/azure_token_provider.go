package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Connection options for Azure service principal authentication.
const (
	OptionAzureTenantID     = "azureTenantId"
	OptionAzureClientID     = "azureClientId"
	OptionAzureClientSecret = "azureClientSecret"
)

// AzureTokenProvider acquires Entra ID tokens for one resource scope.
type AzureTokenProvider struct {
	credential azcore.TokenCredential
	scope      string
	desc       string
}

// NewAzureTokenProvider picks a credential for the given options:
//   - tenant, client id and secret all set: service principal
//   - otherwise: DefaultAzureCredential (env, workload/managed identity,
//     Azure CLI) chained with an interactive browser login, which covers
//     MFA-protected accounts on a developer workstation
func NewAzureTokenProvider(scope string, options map[string]string) (*AzureTokenProvider, error) {
	tenant := options[OptionAzureTenantID]
	client := options[OptionAzureClientID]
	secret := options[OptionAzureClientSecret]

	if tenant != "" && client != "" && secret != "" {
		cred, err := azidentity.NewClientSecretCredential(tenant, client, secret, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure service principal credential: %w", err)
		}
		return &AzureTokenProvider{
			credential: cred,
			scope:      scope,
			desc:       fmt.Sprintf("AzureServicePrincipal(tenant=%s, client=%s)", tenant, client),
		}, nil
	}

	defaultCred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure default credential: %w", err)
	}
	browserCred, err := azidentity.NewInteractiveBrowserCredential(&azidentity.InteractiveBrowserCredentialOptions{
		TenantID: tenant,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure interactive credential: %w", err)
	}
	chain, err := azidentity.NewChainedTokenCredential([]azcore.TokenCredential{defaultCred, browserCred}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential chain: %w", err)
	}

	return &AzureTokenProvider{credential: chain, scope: scope, desc: "AzureDefaultCredential+InteractiveBrowser"}, nil
}

// NewAzureTokenProviderWithCredential wraps an existing credential.
func NewAzureTokenProviderWithCredential(cred azcore.TokenCredential, scope string) *AzureTokenProvider {
	return &AzureTokenProvider{credential: cred, scope: scope, desc: "AzureCredential"}
}

func (p *AzureTokenProvider) GetToken(ctx context.Context) (string, time.Time, error) {
	token, err := p.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{p.scope},
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("azure token acquisition failed: %w", err)
	}
	return token.Token, token.ExpiresOn, nil
}

func (p *AzureTokenProvider) String() string {
	return fmt.Sprintf("%s(scope=%s)", p.desc, p.scope)
}

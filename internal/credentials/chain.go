package credentials

import (
	"context"
	"fmt"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// Chain asks every store and merges their answers key by key. Earlier
// stores take precedence, so an environment user never hides a password
// kept in the credentials file.
type Chain []mkdb.CredentialStore

var _ mkdb.CredentialStore = (Chain)(nil)

func (c Chain) Credentials(ctx context.Context, connectionID string) (map[string]string, error) {
	merged := map[string]string{}
	for _, store := range c {
		creds, err := store.Credentials(ctx, connectionID)
		if err != nil {
			return nil, fmt.Errorf("credentials for %q: %w", connectionID, err)
		}
		for k, v := range creds {
			if _, ok := merged[k]; !ok && v != "" {
				merged[k] = v
			}
		}
	}
	return merged, nil
}

package db

import (
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// supportedAuth lists the authentication types each provider kind accepts.
var supportedAuth = map[mkdb.ProviderKind][]string{
	mkdb.ProviderMSSQL:     {mkdb.AuthSQLLogin, mkdb.AuthAzureMFA},
	mkdb.ProviderPostgres:  {mkdb.AuthSQLLogin, mkdb.AuthAzureMFA, mkdb.AuthAWSIAM, mkdb.AuthGoogleIAM},
	mkdb.ProviderMySQL:     {mkdb.AuthSQLLogin, mkdb.AuthAzureMFA, mkdb.AuthAWSIAM},
	mkdb.ProviderCassandra: {mkdb.AuthSQLLogin},
}

// checkAuth returns ErrUnsupportedAuthMethod when kind cannot use the
// connection's authentication type.
func checkAuth(kind mkdb.ProviderKind, conn *mkdb.Connection) error {
	auth := authType(conn)
	for _, a := range supportedAuth[kind] {
		if a == auth {
			return nil
		}
	}
	return unsupportedAuth(kind, auth)
}

// passwordTokenProvider returns the provider whose tokens stand in for a
// password, or nil for SqlLogin.
func passwordTokenProvider(conn *mkdb.Connection, ep endpoint, azureScope string) (TokenProvider, error) {
	switch authType(conn) {
	case mkdb.AuthAzureMFA:
		return NewAzureTokenProvider(azureScope, conn.Options)
	case mkdb.AuthAWSIAM:
		return NewAWSIAMTokenProvider(ep.String(), conn.Option(mkdb.OptionRegion), conn.Option(mkdb.OptionUser))
	default:
		return nil, nil
	}
}

// Package credentials provides mkdb.CredentialStore implementations that look
// up stored user names and passwords by connection id.
//
// Stores are combined with Chain, which merges their answers key by key.
package credentials

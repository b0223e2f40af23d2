// Package token stores long-lived Instagram Graph API access tokens.
//
// Tokens are keyed by a profile name and usually live in the system keychain.
// DefaultChain falls back to IGGRAPH_ACCESS_TOKEN when no keychain is present:
//
//	chain := token.DefaultChain()
//	cred, err := chain.Get("default")
//	if err != nil {
//		return err
//	}
//	client.SetAccessToken(cred.AccessToken)
//
// Obtaining or refreshing tokens is left to the caller.
package token

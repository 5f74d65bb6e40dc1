/*
Package termsdk is a client SDK for the gemterm terminal service.

# Client vs Session

Client covers the public endpoints (health probes) and logs in:

	client := termsdk.NewClient("http://localhost:8080")
	health, err := client.GetLiveness(ctx)

	session, err := client.Login(ctx, "trader@example.com", "GEM-ABC123XYZ0")

Session carries the bearer token returned by login. Sessions are not
refreshed; once ExpiresAt has passed the caller must log in again.

	snap, err := session.Terminal(ctx)
	snap, err = session.SetChain(ctx, "ethereum")
	snap, err = session.Search(ctx, "pepe")

Admin sessions (the configured admin identity) can manage the invite ledger:

	code, err := session.IssueCode(ctx, termsdk.IssueCodeRequest{DurationDays: 30})
	codes, err := session.ListCodes(ctx)
	err = session.RevokeCode(ctx, code.Code)

# Live updates

Stream opens the terminal websocket and delivers a snapshot on every change:

	updates, err := session.Stream(ctx)
	for snap := range updates {
		fmt.Println(snap.Version, len(snap.DisplayedTokens))
	}

# Errors

Non-2xx responses are returned as *APIError carrying the HTTP status and the
error code from the response body:

	_, err := client.Login(ctx, identity, code)
	var apiErr *termsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == termsdk.ErrorCodeCodeExpired {
		// ask for a new code
	}
*/
package termsdk

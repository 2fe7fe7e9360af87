// Package client contains the desk client's HTTP building blocks.
//
// # Overview
//
//  1. HTTPClient, the request pipeline every API call goes through. It
//     attaches the session credential, and on a 401 for a request that
//     carried one asks its Refresher for a new credential exactly once,
//     then replays the original request once. A failed refresh clears the
//     session and yields ErrSessionExpired.
//  2. RefreshAccessToken, the bare refresh call that relies on the refresh
//     cookie alone and never enters the pipeline.
//  3. PersistentJar, a cookie jar that survives restarts by keeping its
//     cookies in the local metadata table.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-success responses surface as *RequestError, a failed recovery as
// ErrSessionExpired, and rejected logins as *AuthenticationError. All are
// matchable with errors.Is / errors.As.
//
// HTTPClient is safe for concurrent use. Concurrent calls that hit an
// expired credential each refresh on their own.
package client

// Package client contains the transport side of the authflow client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     authentication backend: IsAuthenticated, Profile, Login, Register,
//     Logout, the password-reset calls and the e-mail verification calls.
//  2. A concrete HTTP implementation (see HTTPClient) that sends JSON,
//     tags every call with an X-Request-ID and maps responses to errors.
//  3. A cookie jar that can persist the backend session cookie in SQLite
//     (see PersistentJar, InitDatabase) so a session survives restarts.
//  4. Read-only inspection of the session credential (see InspectCredential).
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Rejected requests come back as
// *APIError, which unwraps to ErrUnauthorized for 401/403. UserMessage turns
// either into the text shown to the user.
//
// The credential is sent by the cookie jar; callers never handle it.
package client

// Package session owns the console's login state.
//
// A single Store is built at startup. It keeps the bearer token in a
// TokenStore so a restarted console resumes the previous session, tells
// subscribers when the operator logs in or out, and answers role queries
// from the token's unverified claims. The claims are read for display and
// navigation decisions only; the library API re-checks every request.
package session

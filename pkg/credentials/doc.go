// Package credentials defines the pluggable credential source consumed by
// the session controller.
//
// A Provider covers two capabilities: producing the principal/secret pair
// for the console's login form, and decorating outgoing requests with
// whatever per-request authentication the scheme needs. The built-in
// variants are:
//
//   - Form: username/password for form login. Decoration is a no-op
//     because the handshake itself establishes authentication.
//   - Token: a static bearer token, with client-side expiry detection when
//     the token happens to be a JWT.
//   - OAuth2: bearer decoration from an oauth2.TokenSource.
//   - EncryptedFile: form credentials read from an AES-GCM sealed file,
//     for setups where secrets are provisioned out of band.
//
// Material is never persisted by any component of this module; it lives in
// process memory only for the duration of a login attempt.
package credentials

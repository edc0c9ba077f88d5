// Package csrf extracts anti-forgery tokens from HTML pages served by
// Spring-Security-style web consoles.
//
// The login page carries the token either as a hidden form input or as a
// meta tag:
//
//	<input type="hidden" name="_csrf" value="73d2c0f8-…"/>
//	<meta name="_csrf" content="73d2c0f8-…"/>
//
// Extract scans the document once and prefers the form input over the meta
// tag when both are present. It is a pure function with no I/O, so callers
// decide whether a missing token is fatal:
//
//	token, ok := csrf.Extract(body)
//	if !ok {
//	    return hacauth.ErrCSRFMissing
//	}
package csrf

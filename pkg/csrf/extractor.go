package csrf

import (
	"strings"

	"golang.org/x/net/html"
)

// TokenName is the attribute name under which the console exposes its CSRF
// token, both on the hidden form input and on the meta tag.
const TokenName = "_csrf"

// Extract returns the CSRF token embedded in the given HTML document.
//
// A hidden <input name="_csrf" value="…"> takes priority; a
// <meta name="_csrf" content="…"> tag is used as fallback. The boolean is
// false when neither carries a non-empty token. Malformed markup is not an
// error: the tokenizer consumes what it can and anything unparseable simply
// yields no token.
func Extract(doc string) (string, bool) {
	var metaToken string

	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// End of document (or unrecoverable garbage).
			if metaToken != "" {
				return metaToken, true
			}
			return "", false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if tag != "input" && tag != "meta" {
				continue
			}

			var fieldName, value, content string
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = z.TagAttr()
				switch string(k) {
				case "name":
					fieldName = string(v)
				case "value":
					value = string(v)
				case "content":
					content = string(v)
				}
			}
			if fieldName != TokenName {
				continue
			}

			if tag == "input" && value != "" {
				return value, true
			}
			if tag == "meta" && content != "" && metaToken == "" {
				metaToken = content
			}
		}
	}
}

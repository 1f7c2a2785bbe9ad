// Package strindex is the embedded SDK for the string analysis index.
//
// It runs the same analyzer, record store and query engine as the HTTP
// server, entirely in process:
//
//	client := strindex.New()
//	rec, err := client.Insert(ctx, "racecar")
//	...
//	recs, _, err := client.List(ctx, map[string]any{"is_palindrome": true})
//
// Natural-language search defaults to a deterministic rule table. Plug a
// custom provider with WithTranslator.
package strindex

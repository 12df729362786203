/*
Package server implements msgpack IPC for the pattern matching engine.

The server provides a minimal interface over stdin/stdout using msgpack
serialization. Messages are processed synchronously with timing info included
in match responses.

# IPC

The server operates on a request response model where clients send structured
messages via stdin and receive responses through stdout. Each message carries
an ID field, an action, and the fields that action needs.

Match requests look like this (shown as JSON for readability):

	{"id": "req_001", "action": "match", "q": "N-T A-F N-T G-M N-T", "l": 24}

The server responds with the words satisfying the pattern, in lexicon order:

	{"id": "req_001", "m": ["PARIS", "RAPID"], "c": 2, "t": 87}

The inverse mapping turns a concrete word into its pattern:

	{"id": "req_002", "action": "pattern", "w": "PARIS"}
	{"id": "req_002", "w": "PARIS", "q": "N-T A-F N-T G-M N-T"}

Other actions: "parse" validates and displays a pattern without searching,
"prefix" lists lexicon words under a confirmed prefix, "reload" re-reads the
word list (optionally with a new minimum length), and "info" reports lexicon
and class table stats.

Caller mistakes (unknown class label, letter outside every class, unknown
action) come back with code 400; a reload that cannot read the word source
comes back with code 503 and leaves the previous lexicon in place.
*/
package server

// Request is an incoming IPC message.
type Request struct {
	ID      string `msgpack:"id"`
	Action  string `msgpack:"action"`
	Pattern string `msgpack:"q,omitempty"`   // "match", "parse"
	Word    string `msgpack:"w,omitempty"`   // "pattern"
	Prefix  string `msgpack:"p,omitempty"`   // "prefix"
	Limit   int    `msgpack:"l,omitempty"`   // "match", "prefix"
	Min     *int   `msgpack:"min,omitempty"` // "reload": new minimum word length
}

// MatchResponse answers a "match" or "prefix" request.
type MatchResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"m"`
	Count     int      `msgpack:"c"`
	Truncated bool     `msgpack:"trunc,omitempty"`
	TimeTaken int64    `msgpack:"t"` // microseconds
}

// PatternResponse answers a "pattern" request.
type PatternResponse struct {
	ID      string `msgpack:"id"`
	Word    string `msgpack:"w"`
	Pattern string `msgpack:"q"`
}

// ParseResponse answers a "parse" request with the compiled pattern:
// labels as resolved plus the letters each position admits.
type ParseResponse struct {
	ID      string   `msgpack:"id"`
	Labels  []string `msgpack:"labels"`
	Letters []string `msgpack:"sets"`
	Length  int      `msgpack:"n"`
}

// InfoResponse answers an "info" request.
type InfoResponse struct {
	ID      string   `msgpack:"id"`
	Words   int      `msgpack:"words"`
	Buckets int      `msgpack:"buckets"`
	MinLen  int      `msgpack:"min_len"`
	MaxLen  int      `msgpack:"max_len"`
	Labels  []string `msgpack:"labels"`
}

// StatusResponse reports readiness and reload outcomes.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Words  int    `msgpack:"words,omitempty"`
}

// ErrorResponse represents an IPC error.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"error"`
	Code  int    `msgpack:"code"`
}

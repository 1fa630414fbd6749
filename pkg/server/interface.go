/*
Package server implements a msgpack IPC for idiom pattern matching.

Clients write msgpack maps to stdin and read one msgpack map per request from stdout.
The server first writes {"status": "ready"}.

# Requests

Every request carries an id that is echoed back. The action defaults to match:

	{"id": "req_001", "q": "l'X-4,X'X-X,X'X-X,X'X-2", "l": 20}

Matches keep dictionary order. c is the number of matches before the limit and t the time taken in microseconds:

	{"id": "req_001", "m": [{"w": "立马不停", "p": "lì mǎ bù tíng", "sp": ["l'i-4", "m'a-3", "b'u-4", "t'ing-2"]}], "c": 1, "t": 85}

Setting s makes malformed patterns an error instead of an empty result:

	{"id": "req_002", "q": "l'X-4,X-X", "s": true}
	{"id": "req_002", "e": "invalid pattern \"l'X-4,X-X\": expected 4 tokens", "c": 400}

Idioms can be looked up by their leading characters:

	{"id": "req_003", "a": "lookup", "x": "画"}

and the loaded dictionary described:

	{"id": "req_004", "a": "info"}
	{"id": "req_004", "status": "ok", "idioms": 31000, "malformed": 2}
*/
package server

// Request is the single envelope for every action
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a,omitempty"` // "match" (default), "lookup", "info", "health"
	Query  string `msgpack:"q,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	Strict bool   `msgpack:"s,omitempty"`
	Prefix string `msgpack:"x,omitempty"` // for "lookup"
}

// Actions understood by the server
const (
	ActionMatch  = "match"
	ActionLookup = "lookup"
	ActionInfo   = "info"
	ActionHealth = "health"
)

// MatchItem - minimal idiom entry in a response
type MatchItem struct {
	Word      string   `msgpack:"w"`
	Pinyin    string   `msgpack:"p"`
	Syllables []string `msgpack:"sp"`
}

// MatchResponse answers match and lookup requests
type MatchResponse struct {
	ID        string      `msgpack:"id"`
	Matches   []MatchItem `msgpack:"m"`
	Count     int         `msgpack:"c"`
	TimeTaken int64       `msgpack:"t"`
}

// InfoResponse describes the loaded dictionary
type InfoResponse struct {
	ID        string `msgpack:"id"`
	Status    string `msgpack:"status"`
	Idioms    int    `msgpack:"idioms"`
	Malformed int    `msgpack:"malformed"`
}

// MatchError holds basic error information for any request
type MatchError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

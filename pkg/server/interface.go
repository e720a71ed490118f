/*
Package server implements msgpack IPC for the jumble solver.

The server reads a stream of msgpack maps on stdin and answers each one on
stdout. Before the first request it sends a ready message:

	{"status": "ready"}

# IPC

Every request carries an ID and an action. Solve requests describe one
puzzle: the scrambled words with their circled spots, and the segment
lengths of the final answer:

	{"id": "req_001", "action": "solve", "words": [{"w": "tca", "c": [0, 1, 2]}], "segs": [3], "l": 5}

The response lists ranked answers, lowest score first, with the pooled
letters and the time taken in microseconds:

	{"id": "req_001", "s": [{"w": ["cat"], "sc": 5}, {"w": ["act"], "sc": 12}], "c": 2, "pool": "actcattac", "t": 310}

Single word lookups return every dictionary anagram with its score:

	{"id": "req_002", "action": "anagram", "word": "tca"}
	{"id": "req_002", "a": [{"w": "act", "sc": 12}, {"w": "cat", "sc": 5}]}

"health" answers {"status": "ok"} and "info" returns dictionary statistics.

# Errors

Failures are reported per request and never stop the server:

	{"id": "req_003", "e": "missing 'words'", "c": 400}

Code 400 marks a malformed request, 422 a puzzle whose circled spots or
segments do not fit its words, and 500 anything else.
*/
package server

// Error codes sent in ErrorResponse.
const (
	CodeBadRequest = 400
	CodeDataShape  = 422
	CodeInternal   = 500
)

// Request is the envelope for every action.
type Request struct {
	ID       string     `msgpack:"id"`
	Action   string     `msgpack:"action"`
	Words    []WordSpec `msgpack:"words,omitempty"`
	Segments []int      `msgpack:"segs,omitempty"`
	Limit    int        `msgpack:"l,omitempty"`
	Word     string     `msgpack:"word,omitempty"`
}

// WordSpec is one scrambled word and its circled spots.
type WordSpec struct {
	Word    string `msgpack:"w"`
	Circled []int  `msgpack:"c"`
}

// SolutionEntry is one ranked answer.
type SolutionEntry struct {
	Words []string `msgpack:"w"`
	Score int      `msgpack:"sc"`
}

// SolveResponse answers a solve request.
type SolveResponse struct {
	ID        string          `msgpack:"id"`
	Solutions []SolutionEntry `msgpack:"s"`
	Count     int             `msgpack:"c"`
	Pool      string          `msgpack:"pool"`
	TimeTaken int64           `msgpack:"t"`
}

// AnagramEntry is one dictionary anagram.
type AnagramEntry struct {
	Word  string `msgpack:"w"`
	Score int    `msgpack:"sc"`
}

// AnagramResponse answers an anagram request.
type AnagramResponse struct {
	ID       string         `msgpack:"id"`
	Anagrams []AnagramEntry `msgpack:"a"`
}

// StatusResponse is sent for ready and health.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// InfoResponse carries dictionary statistics and the request count.
type InfoResponse struct {
	ID       string         `msgpack:"id"`
	Status   string         `msgpack:"status"`
	Stats    map[string]int `msgpack:"stats"`
	Requests int            `msgpack:"requests"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

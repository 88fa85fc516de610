package gong

// Records carries the pagination envelope Gong attaches to list responses.
type Records struct {
	TotalRecords      int    `json:"totalRecords"`
	CurrentPageSize   int    `json:"currentPageSize"`
	CurrentPageNumber int    `json:"currentPageNumber"`
	Cursor            string `json:"cursor,omitempty"`
}

// Party is a participant on a call.
type Party struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Affiliation  string `json:"affiliation,omitempty"`
}

// Call is a read-only projection of a Gong call record.
type Call struct {
	ID        string  `json:"id"`
	URL       string  `json:"url,omitempty"`
	Title     string  `json:"title,omitempty"`
	Scheduled string  `json:"scheduled,omitempty"`
	Started   string  `json:"started,omitempty"`
	Duration  int     `json:"duration,omitempty"`
	Direction string  `json:"direction,omitempty"`
	System    string  `json:"system,omitempty"`
	Scope     string  `json:"scope,omitempty"`
	Media     string  `json:"media,omitempty"`
	Language  string  `json:"language,omitempty"`
	Parties   []Party `json:"parties,omitempty"`
}

// CallsResponse is the upstream response for GET /calls.
type CallsResponse struct {
	RequestID string  `json:"requestId,omitempty"`
	Records   Records `json:"records"`
	Calls     []Call  `json:"calls"`
}

// Sentence is a single timestamped utterance. Start and End are millisecond
// offsets from the beginning of the call.
type Sentence struct {
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Text  string `json:"text"`
}

// Monologue is an uninterrupted stretch of speech by one speaker, optionally
// tagged with the topic Gong assigned to it.
type Monologue struct {
	SpeakerID string     `json:"speakerId"`
	Topic     string     `json:"topic,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// CallTranscript is a read-only projection of one call's transcript.
type CallTranscript struct {
	CallID     string      `json:"callId"`
	Transcript []Monologue `json:"transcript"`
}

// TranscriptsResponse is the upstream response for POST /calls/transcript.
type TranscriptsResponse struct {
	RequestID       string           `json:"requestId,omitempty"`
	Records         Records          `json:"records"`
	CallTranscripts []CallTranscript `json:"callTranscripts"`
}

// transcriptFilter is the request body for POST /calls/transcript. The include
// flags match what the upstream expects for a full transcript payload.
type transcriptFilter struct {
	Filter struct {
		CallIDs                    []string `json:"callIds"`
		IncludeEntities            bool     `json:"includeEntities"`
		IncludeInteractionsSummary bool     `json:"includeInteractionsSummary"`
		IncludeTrackers            bool     `json:"includeTrackers"`
	} `json:"filter"`
}

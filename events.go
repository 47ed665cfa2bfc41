package nftseries

import (
	"encoding/json"
)

const (
	// EventStandard is the name of the token standard all events follow.
	EventStandard = "nep171"
	// EventVersion is the version of the standard.
	EventVersion = "1.0.0"

	// eventLogPrefix is prepended to the JSON form of an event when it is
	// logged, so that indexers can find it.
	eventLogPrefix = "EVENT_JSON:"
)

// EventKind tells what happened to the tokens listed in an event.
type EventKind string

const (
	EventMint     EventKind = "nft_mint"
	EventBurn     EventKind = "nft_burn"
	EventTransfer EventKind = "nft_transfer"
)

// Event is the record emitted by every mutating operation.
type Event struct {
	Standard string       `json:"standard"`
	Version  string       `json:"version"`
	Kind     EventKind    `json:"event"`
	Data     []EventEntry `json:"data"`
}

// EventEntry describes a group of tokens affected the same way.
type EventEntry struct {
	// OwnerID is set for mint and burn entries.
	OwnerID AccountID `json:"owner_id,omitempty"`
	// AuthorizedID is the account that acted on behalf of the owner,
	// when it was not the owner itself.
	AuthorizedID AccountID `json:"authorized_id,omitempty"`
	// OldOwnerID and NewOwnerID are set for transfer entries.
	OldOwnerID AccountID `json:"old_owner_id,omitempty"`
	NewOwnerID AccountID `json:"new_owner_id,omitempty"`
	TokenIDs   []string  `json:"token_ids"`
	Memo       string    `json:"memo,omitempty"`
}

func newEvent(kind EventKind, entry EventEntry) Event {
	return Event{
		Standard: EventStandard,
		Version:  EventVersion,
		Kind:     kind,
		Data:     []EventEntry{entry},
	}
}

// NewMintEvent returns an event for tokens minted to owner.
func NewMintEvent(owner AccountID, tokenIDs []string, memo string) Event {
	return newEvent(EventMint, EventEntry{
		OwnerID:  owner,
		TokenIDs: tokenIDs,
		Memo:     memo,
	})
}

// NewBurnEvent returns an event for tokens of owner that were burned.
// authorized is the acting account when it differs from the owner.
func NewBurnEvent(owner, authorized AccountID, tokenIDs []string, memo string) Event {
	return newEvent(EventBurn, EventEntry{
		OwnerID:      owner,
		AuthorizedID: authorized,
		TokenIDs:     tokenIDs,
		Memo:         memo,
	})
}

// NewTransferEvent returns an event for tokens moved from one owner to
// another.
func NewTransferEvent(from, to, authorized AccountID, tokenIDs []string, memo string) Event {
	return newEvent(EventTransfer, EventEntry{
		AuthorizedID: authorized,
		OldOwnerID:   from,
		NewOwnerID:   to,
		TokenIDs:     tokenIDs,
		Memo:         memo,
	})
}

// TokenIDs returns the ids of all tokens listed in this event.
func (e Event) TokenIDs() []string {
	var ids []string
	for _, d := range e.Data {
		ids = append(ids, d.TokenIDs...)
	}
	return ids
}

// String returns the log line of this event.
func (e Event) String() string {
	raw, err := json.Marshal(e)
	if err != nil {
		// Event contains only strings, this is unreachable.
		panic(err)
	}
	return eventLogPrefix + string(raw)
}

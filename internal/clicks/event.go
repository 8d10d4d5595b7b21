package clicks

import "time"

// TopicLinkClicked carries one event per call-to-action activation.
const TopicLinkClicked = "link.clicked"

// LinkClickedEvent records a single visitor click. It carries only what
// the counter needs; there is no per-click analytics store.
type LinkClickedEvent struct {
	LinkID     string    `json:"linkId"`
	Slug       string    `json:"slug"`
	OccurredAt time.Time `json:"occurredAt"`
}

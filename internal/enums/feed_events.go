package enums

const (
	FEED_EVENT_GRAM_CREATED    = "gram_created"
	FEED_EVENT_GRAM_UPDATED    = "gram_updated"
	FEED_EVENT_GRAM_DESTROYED  = "gram_destroyed"
	FEED_EVENT_COMMENT_CREATED = "comment_created"
)

const FEED_CHANNEL = "grams_feed"

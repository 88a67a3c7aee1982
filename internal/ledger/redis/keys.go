package redis

const (
	// keyPrefixEntry is the prefix for notified-listing entries.
	keyPrefixEntry = "danwatch:notified:"
	// keyAllEntries is the set of all notified listing IDs.
	keyAllEntries = "danwatch:notified:all"
)

// entryKey returns the Redis key for a notified listing by ID.
func entryKey(id string) string {
	return keyPrefixEntry + id
}

// Package store holds the bot's durable mutable state: the subscriber set and
// the countdown table. Each store is the sole owner of its in-memory state,
// guards it with a mutex, and rewrites its backing file wholesale (atomically,
// via temp-file-then-rename) inside the same critical section as the mutation.
//
// File formats are a compatibility surface shared with earlier deployments:
// subscribers are a JSON array of user ids, countdowns a CSV with columns
// user_id, date (ISO-8601), name.
package store

// Package cache provides a bounded in-memory LRU cache for fetched audio
// bytes, keyed by URL. Decoded buffers and resolved URLs are cached by their
// owners without eviction; this cache only bounds the raw compressed bytes
// kept around between fetch and decode.
package cache

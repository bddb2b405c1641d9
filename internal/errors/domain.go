package errors

import "time"

// Metadata keys shared by the repositories and transports
const (
	MetaStoryID         = "story_id"
	MetaSessionID       = "session_id"
	MetaVersion         = "version"
	MetaExpectedVersion = "expected_version"
	MetaExpiredAt       = "expired_at"
)

// StoryNotFound reports a story id with no stored record
func StoryNotFound(id string) *Error {
	return NotFoundf("story with ID %s not found", id).WithMeta(MetaStoryID, id)
}

// StoryExists reports a create against a taken story id
func StoryExists(id string) *Error {
	return AlreadyExistsf("story with ID %s already exists", id).WithMeta(MetaStoryID, id)
}

// StoryVersionConflict reports an update made against a stale version
func StoryVersionConflict(id string, version, expected int64) *Error {
	return Abortedf("story %s is at version %d, expected %d", id, version, expected).
		WithMeta(MetaStoryID, id).
		WithMeta(MetaVersion, version).
		WithMeta(MetaExpectedVersion, expected)
}

// SessionNotFound reports a preview session id with no stored session
func SessionNotFound(id string) *Error {
	return NotFoundf("preview session %s not found", id).WithMeta(MetaSessionID, id)
}

// SessionExpired reports a preview session past its expiry. It is a not
// found error so callers treat both the same way.
func SessionExpired(id string, at time.Time) *Error {
	return NotFoundf("preview session %s has expired", id).
		WithMeta(MetaSessionID, id).
		WithMeta(MetaExpiredAt, at.UTC().Format(time.RFC3339))
}

package common

// SessionTokenHeaderName is the gRPC metadata key used to carry the signed
// session token on inbound requests.
const SessionTokenHeaderName = "session_token"

// PhotoListLimit caps the number of photos returned for a profile.
const PhotoListLimit = 10

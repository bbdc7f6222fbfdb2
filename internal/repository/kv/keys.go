// Package kv implements the repository interfaces over the local key-value store.
package kv

// Storage keys. They match the original application layout so existing
// installations keep their data. The elder-info record is owned by another
// module; this package only reads it and patches name/birthDate.
const (
	profileKey   = "care:auth:profile"
	databaseKey  = "care:auth:db"
	sessionKey   = "care:auth:session"
	elderInfoKey = "care:elder-info"
)

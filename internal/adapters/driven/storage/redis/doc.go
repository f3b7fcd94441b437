// Package redis stores document sessions in Redis so that several API
// server processes can share them. Sessions are JSON values under
// "immigraid:session:<id>" with a sliding expiry.
package redis

// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key validation and privacy-preserving hashing.

# Admin Key

The admin surface is protected by a single shared secret supplied via
configuration. ValidateAdminKey compares a provided key against it in
constant time:

	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey); err != nil {
		// reject
	}

# IP Hashing

HashIP produces a salted one-way hash of a client IP for the vote attempt
audit trail. The raw address is never stored:

	ipHash := auth.HashIP(middleware.GetClientIP(r), cfg.IPHashSalt)

# Random IDs

GenerateID returns a random hex string, used for object storage keys:

	key, err := auth.GenerateID(8) // 16 hex chars
*/
package auth

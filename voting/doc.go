// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the core election rules: duplicate-vote detection,
ballot submission, and the attempt audit trail.

# Identity Check

CheckIfAlreadyVoted consults two sources of truth, in order:

 1. voting_history - the immutable ledger. A match here blocks the ballot
    even if an administrator has since deleted the voters row.
 2. voters joined with rankings - a live voter with at least one ranking.

Both queries use the OR-predicate (email OR phone_number), so a shared phone
number across different emails blocks the second submitter.

# Ballot Submission

Submit validates, re-runs the identity check, creates or reuses the voter
row (UNIQUE email; conflict means converge, not fail), then writes the
voting_history row and the voter's ranking set in a single transaction,
and logs a success attempt after commit.

The voting_history insert is the atomic gate against check-then-act races:
the table's UNIQUE constraints on email and phone_number reject the second
writer at the store even when both passed the earlier check. Sharing one
transaction with the rankings write means a failed ballot leaves no gate
row behind, so the voter can retry.

# Attempt Log

LogAttempt is best effort. It never returns an error and never aborts a
submission; failures are traced via slog and counted in metrics.

# Errors

  - *DuplicateVoteError: identity already voted; carries the original
    voter's name, email, phone, and timestamp for user self-diagnosis
  - *ValidationError: bad input, caught before any remote call
  - anything else: store failure, retryable by the caller
*/
package voting

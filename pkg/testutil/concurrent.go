// Package testutil holds helpers shared by concurrency-heavy tests.
package testutil

import (
	"sync"
	"sync/atomic"

	dErrors "skillchain/pkg/domain-errors"
)

// ConcurrentResult tracks outcomes of concurrent test operations, bucketed
// by how the ledger refused them.
type ConcurrentResult struct {
	Successes int32
	Rejected  int32
	NotFounds int32
	Errors    int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Rejected + r.NotFounds + r.Errors
}

// guardCodes are the refusals a well-formed request can still earn.
var guardCodes = []dErrors.Code{
	dErrors.CodeUnauthorized,
	dErrors.CodeQuotaExceeded,
	dErrors.CodeTokenLocked,
	dErrors.CodeCooldownActive,
	dErrors.CodeInvalidApproval,
	dErrors.CodeConflict,
}

// RunConcurrent executes fn in parallel goroutines and collects results.
// This helper replaces the common pattern of WaitGroup + atomic counters in tests.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, rejected, notFounds, errs atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case dErrors.HasCode(err, dErrors.CodeNotFound):
				notFounds.Add(1)
			case isGuardRejection(err):
				rejected.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	wg.Wait()

	return &ConcurrentResult{
		Successes: successes.Load(),
		Rejected:  rejected.Load(),
		NotFounds: notFounds.Load(),
		Errors:    errs.Load(),
	}
}

func isGuardRejection(err error) bool {
	for _, code := range guardCodes {
		if dErrors.HasCode(err, code) {
			return true
		}
	}
	return false
}

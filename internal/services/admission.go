// internal/services/admission.go
package services

import (
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/newspulse/backend/internal/models"
	"github.com/sirupsen/logrus"
)

const lockShards = 64

// AdmissionController enforces the per-user request ceiling. A user starts
// untracked; the first admitted request creates the counter at 1, each
// further admitted request increments it, and once the counter reaches the
// ceiling every admit is denied without touching the counter.
//
// The counter has no reset window: the ceiling is a lifetime quota.
//
// Read-then-write on the counter is serialised per user through sharded
// mutexes, so concurrent requests for the same user can never both take the
// last slot. This process owns the users table, which makes in-process
// locking sufficient.
type AdmissionController struct {
	users   models.UserRepository
	ceiling int
	locks   [lockShards]sync.Mutex
	logger  *logrus.Logger
}

func NewAdmissionController(users models.UserRepository, ceiling int, logger *logrus.Logger) *AdmissionController {
	return &AdmissionController{
		users:   users,
		ceiling: ceiling,
		logger:  logger,
	}
}

// Admit returns nil when the request is allowed and ErrRateLimitExceeded
// when the user has exhausted the ceiling. An empty userID is the caller's
// validation problem, not an admission outcome.
func (a *AdmissionController) Admit(userID string) error {
	mu := a.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	count, found, err := a.users.GetRequestCount(userID)
	if err != nil {
		return fmt.Errorf("failed to read request count: %w", err)
	}

	if !found {
		if err := a.users.Create(userID); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		a.logger.WithField("user_id", userID).Debug("User tracked on first request")
		return nil
	}

	if count >= a.ceiling {
		a.logger.WithFields(logrus.Fields{
			"user_id":       userID,
			"request_count": count,
			"ceiling":       a.ceiling,
		}).Warn("Admission denied")
		return ErrRateLimitExceeded
	}

	if err := a.users.IncrementRequestCount(userID); err != nil {
		return fmt.Errorf("failed to increment request count: %w", err)
	}
	return nil
}

func (a *AdmissionController) lockFor(userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &a.locks[h.Sum32()%lockShards]
}

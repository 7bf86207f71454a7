// Copyright 2026 Seeds DAO Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dao

import (
	"errors"
	"fmt"

	"github.com/seedsdao/gardend/database"
	"github.com/seedsdao/gardend/database/models"
	"github.com/seedsdao/gardend/event"
)

// TriggerGoLive is the trigger condition that releases a grant's escrow lock
const TriggerGoLive = "golive"

// HandleTrigger processes an inbound escrow trigger. Handling is idempotent
// keyed by the lock: a trigger for a voided lock is a no-op, a repeated
// trigger for an already released lock is ignored, and a trigger for a lock
// the engine doesn't know fails with ErrNotFound so the sender can retry
// after the owning proposal settles.
func (e *Engine) HandleTrigger(name, source string, lockID uint64) error {
	if name != TriggerGoLive {
		return fmt.Errorf("unknown trigger %q: %w", name, ErrInvalidState)
	}
	txn := e.db.Transaction()
	return txn.Do(func(txn *database.Txn) error {
		lock, err := e.db.GetEscrowLock(lockID, txn)
		if err != nil {
			if errors.Is(err, models.ErrEscrowLockNotFound) {
				return fmt.Errorf("escrow lock %d: %w", lockID, ErrNotFound)
			}
			return err
		}
		switch lock.State {
		case models.EscrowLockVoided:
			// Owning proposal failed; the lock was already cancelled
			e.config.Logger.Info(
				"ignoring trigger for voided lock",
				"component", "dao",
				"trigger", name,
				"source", source,
				"lock_id", lockID,
			)
			return nil
		case models.EscrowLockLive:
			return nil
		}
		if err := e.config.Escrow.ReleaseLock(lockID); err != nil {
			return err
		}
		lock.State = models.EscrowLockLive
		lock.UpdatedAt = e.config.Clock.Now().Unix()
		return e.db.SetEscrowLock(lock, txn)
	})
}

// HandleTriggerEvent adapts HandleTrigger to the event bus. Suitable for
// SubscribeFunc on EscrowTriggerEventType.
func (e *Engine) HandleTriggerEvent(evt event.Event) {
	trigger, ok := evt.Data.(event.EscrowTriggerEvent)
	if !ok {
		return
	}
	err := e.HandleTrigger(trigger.Name, trigger.Source, trigger.LockID)
	if err != nil {
		e.config.Logger.Warn(
			"escrow trigger handling failed",
			"component", "dao",
			"trigger", trigger.Name,
			"lock_id", trigger.LockID,
			"error", err,
		)
	}
}

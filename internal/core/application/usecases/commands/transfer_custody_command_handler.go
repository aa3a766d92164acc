package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/idempotency"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"
)

// TransferCustodyResult is the outcome of a handshake. Replay is true when
// the result was served from the idempotency store.
type TransferCustodyResult struct {
	OK      bool              `json:"ok"`
	Payload services.Manifest `json:"payload"`
	Replay  bool              `json:"replay"`
}

// TransferCustodyCommandHandler runs the manifest-based custody handshake.
//
// Steps, all in one transaction:
//  1. a live claimed key returns its cached result as a replay, nothing else runs
//  2. load the shipment (NotFound if absent)
//  3. build the manifest
//  4. claim the key with an atomic insert-if-absent; losing a concurrent race
//     returns the winner's cached result as a replay
//  5. append NFC_HANDSHAKE_CONFIRMED
//
// After commit the billing trigger is called once. Its failure is logged and
// does not fail the call. Replays never reach it.
type TransferCustodyCommandHandler struct {
	uowFactory CustodyUoWFactory
	manifests  services.ManifestBuilder
	billing    ports.BillingTrigger
	clock      clock.Clock
	ttl        time.Duration
	logger     *slog.Logger
}

func NewTransferCustodyCommandHandler(
	uowFactory CustodyUoWFactory,
	manifests services.ManifestBuilder,
	billing ports.BillingTrigger,
	clk clock.Clock,
	ttl time.Duration,
	logger *slog.Logger,
) TransferCustodyCommandHandler {
	return TransferCustodyCommandHandler{
		uowFactory: uowFactory,
		manifests:  manifests,
		billing:    billing,
		clock:      clk,
		ttl:        ttl,
		logger:     logger.With("component", "TransferCustodyCommandHandler"),
	}
}

func (h TransferCustodyCommandHandler) Handle(ctx context.Context, cmd TransferCustodyCommand) (TransferCustodyResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransferCustodyResult{}, err
	}

	result, replayed, err := h.transfer(ctx, cmd)
	if err != nil {
		return TransferCustodyResult{}, err
	}
	if replayed {
		h.logger.InfoContext(ctx, "custody transfer replayed",
			"shipment_id", cmd.ShipmentID().String(),
			"idempotency_key", cmd.IdempotencyKey())
		return result, nil
	}

	if h.billing != nil {
		if billingErr := h.billing.CustodyTransferred(ctx, result.Payload); billingErr != nil {
			h.logger.ErrorContext(ctx, "billing trigger failed",
				"shipment_id", cmd.ShipmentID().String(),
				"error", billingErr)
		}
	}

	return result, nil
}

func (h TransferCustodyCommandHandler) transfer(ctx context.Context, cmd TransferCustodyCommand) (TransferCustodyResult, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransferCustodyResult{}, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	key := cmd.IdempotencyKey()
	store := uow.IdempotencyStore()

	if key != "" {
		cached, found, err := h.lookup(ctx, store, key, now)
		if err != nil || found {
			return cached, found, err
		}
	}

	s, err := uow.ShipmentRepository().GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return TransferCustodyResult{}, false, err
	}

	manifest, err := h.manifests.Build(s)
	if err != nil {
		return TransferCustodyResult{}, false, err
	}
	result := TransferCustodyResult{OK: true, Payload: manifest}

	if key != "" {
		claimed, claimErr := h.claim(ctx, store, key, result, now)
		if claimErr != nil {
			return TransferCustodyResult{}, false, claimErr
		}
		if !claimed {
			cached, found, lookupErr := h.lookup(ctx, store, key, now)
			if lookupErr != nil {
				return TransferCustodyResult{}, false, lookupErr
			}
			if !found {
				return TransferCustodyResult{}, false, fmt.Errorf("idempotency key %q claimed but not readable", key)
			}
			return cached, true, nil
		}
	}

	payload, err := toPayload(manifest)
	if err != nil {
		return TransferCustodyResult{}, false, err
	}
	if err = recordEvent(ctx, uow.EventStore(), now, event.NFCHandshakeConfirmed, s.ID().String(), event.Payload{
		"shipmentId": s.ID().String(),
		"payload":    payload,
	}); err != nil {
		return TransferCustodyResult{}, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransferCustodyResult{}, false, err
	}

	return result, false, nil
}

// lookup returns the cached result of a live claim.
func (h TransferCustodyCommandHandler) lookup(
	ctx context.Context,
	store ports.IdempotencyStore,
	key string,
	now time.Time,
) (TransferCustodyResult, bool, error) {
	record, err := store.Get(ctx, key)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return TransferCustodyResult{}, false, nil
	}
	if err != nil {
		return TransferCustodyResult{}, false, err
	}
	if record.IsExpired(now) {
		return TransferCustodyResult{}, false, nil
	}

	var cached TransferCustodyResult
	if err = json.Unmarshal(record.Result(), &cached); err != nil {
		return TransferCustodyResult{}, false, fmt.Errorf("decode cached result for key %q: %w", key, err)
	}
	cached.Replay = true
	return cached, true, nil
}

func (h TransferCustodyCommandHandler) claim(
	ctx context.Context,
	store ports.IdempotencyStore,
	key string,
	result TransferCustodyResult,
	now time.Time,
) (bool, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return false, err
	}

	record, err := idempotency.NewRecord(key, raw, now, h.ttl)
	if err != nil {
		return false, err
	}

	return store.Claim(ctx, record)
}

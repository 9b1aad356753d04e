package orchestrator

import (
	"context"
	"net/http"

	"github.com/dungeonworks/gateway/internal/clients"
	"github.com/dungeonworks/gateway/internal/errors"
	"github.com/dungeonworks/gateway/internal/logging"
)

// Inventory fronts the pickup transaction and inventory rendering.
type Inventory struct {
	inventory *clients.Inventory
	items     *clients.Item
	log       *clients.ActivityLog
	logger    *logging.Logger
}

// NewInventory creates an inventory orchestrator.
func NewInventory(inventory *clients.Inventory, items *clients.Item, log *clients.ActivityLog, logger *logging.Logger) *Inventory {
	return &Inventory{inventory: inventory, items: items, log: log, logger: logger}
}

// Pickup transfers an item from a room into the player's inventory.
// The pickup service owns the transfer; its response passes through
// with its original status.
func (i *Inventory) Pickup(ctx context.Context, playerID, roomID, itemID int) (*Result, error) {
	if roomID == 0 || itemID == 0 {
		return nil, errors.Validation("Room ID and Item ID are required")
	}
	if playerID == 0 {
		return nil, errors.Validation("Player ID is required")
	}

	resp, err := i.inventory.Pickup(ctx, roomID, itemID, playerID)
	if err != nil {
		return nil, err
	}
	return passThrough(resp), nil
}

// ViewResult is the reshaped inventory payload.
type ViewResult struct {
	PlayerID int                  `json:"player_id"`
	Items    []clients.ItemDetail `json:"items"`
	LogError string               `json:"log_error,omitempty"`
}

// View fetches the enriched inventory projection. Viewing is itself a
// logged activity; a log failure degrades rather than failing the
// view.
func (i *Inventory) View(ctx context.Context, playerID int) (*ViewResult, error) {
	if playerID == 0 {
		return nil, errors.Validation("Player ID is required")
	}

	var logErr string
	if err := i.log.Append(ctx, playerID, "Viewed inventory"); err != nil {
		i.logger.WithContext(ctx).WithError(err).Error("activity log append failed")
		logErr = err.Error()
	}

	resp, err := i.inventory.View(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, errors.Upstream(resp.Status, "Failed to retrieve inventory")
	}

	var payload struct {
		Inventory []clients.ItemDetail `json:"inventory"`
	}
	if err := resp.Decode(&payload); err != nil {
		return nil, errors.Internal("malformed inventory payload").WithCause(err)
	}

	items := payload.Inventory
	if items == nil {
		items = []clients.ItemDetail{}
	}
	return &ViewResult{PlayerID: playerID, Items: items, LogError: logErr}, nil
}

// ItemDetailsBatch resolves details for a set of items. Enrichment is
// best-effort for rendering: any downstream failure yields an empty
// slice, never an error.
func (i *Inventory) ItemDetailsBatch(ctx context.Context, itemIDs []int) []clients.ItemDetail {
	items, err := i.inventory.ItemDetailsBatch(ctx, itemIDs)
	if err != nil {
		i.logger.WithContext(ctx).WithError(err).Error("batch item detail fetch failed")
		return []clients.ItemDetail{}
	}
	if items == nil {
		items = []clients.ItemDetail{}
	}
	return items
}

// ItemDetails fetches details for a single item, passing the item
// service's response through.
func (i *Inventory) ItemDetails(ctx context.Context, itemID int) (*Result, error) {
	if itemID == 0 {
		return nil, errors.Validation("Item ID is required")
	}
	resp, err := i.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, errors.Upstream(resp.Status, "Failed to fetch item details")
	}
	return passThrough(resp), nil
}

package clients

import (
	"context"
	"fmt"

	"github.com/dungeonworks/gateway/internal/errors"
	"github.com/dungeonworks/gateway/internal/httputil"
)

// Inventory wraps the pickup and open-inventory services.
type Inventory struct {
	pickup *httputil.Client
	open   *httputil.Client
}

// NewInventory creates an inventory client over the pickup and
// open-inventory service endpoints.
func NewInventory(pickup, open *httputil.Client) *Inventory {
	return &Inventory{pickup: pickup, open: open}
}

// Pickup transfers an item from a room into the player's inventory.
// The pickup service owns the transfer transaction; its response is
// passed through verbatim.
func (i *Inventory) Pickup(ctx context.Context, roomID, itemID, playerID int) (*httputil.Response, error) {
	path := fmt.Sprintf("/room/%d/item/%d/pickup", roomID, itemID)
	return i.pickup.Post(ctx, path, map[string]int{"player_id": playerID})
}

// View fetches the player's inventory, already joined with item
// descriptions by the open-inventory service.
func (i *Inventory) View(ctx context.Context, playerID int) (*httputil.Response, error) {
	return i.open.Get(ctx, fmt.Sprintf("/inventory/%d", playerID))
}

// ItemDetailsBatch resolves details for a set of items in one call.
func (i *Inventory) ItemDetailsBatch(ctx context.Context, itemIDs []int) ([]ItemDetail, error) {
	resp, err := i.open.Post(ctx, "/items/batch", map[string][]int{"item_ids": itemIDs})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, errors.Upstream(resp.Status, resp.ErrorMessage())
	}

	var payload struct {
		Items []ItemDetail `json:"items"`
	}
	if err := resp.Decode(&payload); err != nil {
		return nil, errors.Internal("malformed batch items response").WithCause(err)
	}
	return payload.Items, nil
}

// Item wraps the item service's single-item lookup.
type Item struct {
	c *httputil.Client
}

// NewItem creates an item service client.
func NewItem(c *httputil.Client) *Item { return &Item{c: c} }

// Get fetches details for one item.
func (i *Item) Get(ctx context.Context, itemID int) (*httputil.Response, error) {
	return i.c.Get(ctx, fmt.Sprintf("/item/%d", itemID))
}

package handler

import (
	"time"

	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/ports"
)

type addItemRequest struct {
	Name      string `json:"name"      validate:"required,max=64"`
	Stock     uint64 `json:"stock"`
	Price     uint64 `json:"price"`
	Threshold uint64 `json:"threshold"`
}

type purchaseRequest struct {
	Quantity uint64 `json:"quantity" validate:"gt=0"`
}

type restockRequest struct {
	Amount uint64 `json:"amount" validate:"gt=0"`
}

type priceRequest struct {
	Price uint64 `json:"price"`
}

type thresholdRequest struct {
	Threshold uint64 `json:"threshold"`
}

type staffRequest struct {
	Address string `json:"address" validate:"required"`
	Add     *bool  `json:"add"     validate:"required"`
}

type itemResponse struct {
	domain.InventoryItem
	LowStock bool `json:"low_stock"`
}

type itemsResponse struct {
	Items       []itemResponse `json:"items"`
	Count       int            `json:"count"`
	RefreshedAt *time.Time     `json:"refreshed_at,omitempty"`
}

type dispatchResponse struct {
	Op           domain.Operation `json:"op"`
	Value        uint64           `json:"value"`
	TxHash       string           `json:"tx_hash,omitempty"`
	Block        uint64           `json:"block,omitempty"`
	RefreshError string           `json:"refresh_error,omitempty"`
}

type eventResponse struct {
	domain.DomainEvent
	Message string `json:"message"`
}

type eventsResponse struct {
	Events []eventResponse `json:"events"`
	Count  int             `json:"count"`
}

func toItemResponse(it domain.InventoryItem) itemResponse {
	return itemResponse{InventoryItem: it, LowStock: it.LowStock()}
}

func toDispatchResponse(r *ports.DispatchResult) dispatchResponse {
	resp := dispatchResponse{Op: r.Op, Value: r.Value}
	if r.Receipt != nil {
		resp.TxHash = r.Receipt.TxHash
		resp.Block = r.Receipt.Block
	}
	if r.RefreshErr != nil {
		resp.RefreshError = r.RefreshErr.Error()
	}
	return resp
}

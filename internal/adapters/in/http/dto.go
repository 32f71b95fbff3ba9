package http

import "time"

// ErrorResponse is the uniform error envelope of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LineItemRequest describes one ordered produce line.
type LineItemRequest struct {
	ProduceType string  `json:"produceType"`
	Mode        string  `json:"mode"`
	QuantityKg  float64 `json:"quantityKg"`
	UnitCount   int     `json:"unitCount"`
}

// RegisterOrderRequest is the body of POST /orders.
type RegisterOrderRequest struct {
	LineItems []LineItemRequest `json:"lineItems"`
}

// RegisterOrderResponse returns the generated order identifier.
type RegisterOrderResponse struct {
	OrderID string `json:"orderId"`
}

// PieceResponse describes one planned piece.
type PieceResponse struct {
	ID          string  `json:"id"`
	ProduceType string  `json:"produceType"`
	Mode        string  `json:"mode"`
	Units       int     `json:"units"`
	EstWeightKg float64 `json:"estWeightKg"`
	Liters      float64 `json:"liters"`
	Sequence    int     `json:"sequence"`
}

// PackOrderResponse returns the packing plan of an order.
type PackOrderResponse struct {
	Pieces []PieceResponse `json:"pieces"`
}

// CreateShelfSlotRequest is the body of POST /shelf-slots.
type CreateShelfSlotRequest struct {
	LogisticCenterID string `json:"logisticCenterId"`
	Zone             string `json:"zone"`
	Code             string `json:"code"`
}

// CreateShelfSlotResponse returns the generated slot identifier.
type CreateShelfSlotResponse struct {
	SlotID string `json:"slotId"`
}

// FreeSlotResponse describes one free shelf slot.
type FreeSlotResponse struct {
	ID   string `json:"id"`
	Zone string `json:"zone"`
	Code string `json:"code"`
}

// StagePackageRequest is the body of POST /packages.
type StagePackageRequest struct {
	OrderID          string `json:"orderId"`
	LogisticCenterID string `json:"logisticCenterId"`
	ShiftName        string `json:"shiftName"`
}

// StagePackageResponse returns the staged package and its claimed slot.
type StagePackageResponse struct {
	PackageID   string `json:"packageId"`
	ShelfSlotID string `json:"shelfSlotId"`
}

// MovePackageRequest is the body of POST /packages/:packageId/move.
type MovePackageRequest struct {
	ToSlotID string `json:"toSlotId"`
}

// ContainerRequest describes one container being consolidated into a shipment.
type ContainerRequest struct {
	Barcode     string  `json:"barcode"`
	ProduceType string  `json:"produceType"`
	Quantity    float64 `json:"quantity"`
}

// CreateShipmentRequest is the body of POST /shipments.
type CreateShipmentRequest struct {
	OrderID    string             `json:"orderId"`
	Containers []ContainerRequest `json:"containers"`
}

// CreateShipmentResponse returns the generated shipment identifier.
type CreateShipmentResponse struct {
	ShipmentID string `json:"shipmentId"`
}

// RecordScanRequest is the body of POST /shipments/:shipmentId/scans.
type RecordScanRequest struct {
	Barcode string `json:"barcode"`
	Actor   string `json:"actor"`
}

// ScanProgressResponse returns the recomputed scan tally.
type ScanProgressResponse struct {
	Total   int `json:"total"`
	Scanned int `json:"scanned"`
}

// ContainerScanStateResponse describes one container's scan state.
type ContainerScanStateResponse struct {
	Barcode   string     `json:"barcode"`
	Scanned   bool       `json:"scanned"`
	ScannedBy *string    `json:"scannedBy,omitempty"`
	ScannedAt *time.Time `json:"scannedAt,omitempty"`
}

// ShipmentProgressResponse returns a shipment's status and per-container scan states.
type ShipmentProgressResponse struct {
	ShipmentID string                       `json:"shipmentId"`
	Status     string                       `json:"status"`
	Total      int                          `json:"total"`
	Scanned    int                          `json:"scanned"`
	Containers []ContainerScanStateResponse `json:"containers"`
}

// MintArrivalTokenResponse returns a freshly minted arrival token with its
// confirmation link.
type MintArrivalTokenResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ConfirmArrivalResponse acknowledges a consumed arrival token.
type ConfirmArrivalResponse struct {
	OK         bool   `json:"ok"`
	ShipmentID string `json:"shipmentId"`
}

// ScanLinkResponse returns a signed read-only link token.
type ScanLinkResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ResolvedScanLinkResponse describes the entity a scan link references.
type ResolvedScanLinkResponse struct {
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

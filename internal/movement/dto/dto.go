package dto

type MovementFilters struct {
	CompanyID string
	ProductID string
	Page      int
	PageSize  int
}

type TransferFilters struct {
	CompanyID string
	ProductID string
	Page      int
	PageSize  int
}

const EventRestockRequested = "RestockRequested"

// RestockRequested is published to the restock topic; the mailer consuming it
// lives outside this service.
type RestockRequested struct {
	EventType     string `json:"event_type"`
	CompanyID     string `json:"company_id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	RequestedBy   string `json:"requested_by,omitempty"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockActual   int    `json:"stock_actual"`
	UmbralMinimo  int    `json:"umbral_minimo"`
	Nota          string `json:"nota,omitempty"`
	Automatic     bool   `json:"automatic"`
	RequestedAt   string `json:"requested_at"`
}

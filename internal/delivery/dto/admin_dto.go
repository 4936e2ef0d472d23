package dto

// TelegramLoginRequest carries the raw login-widget payload. Verification
// happens over the full key set, so unknown keys must survive decoding.
type TelegramLoginRequest map[string]string

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	MasterID  int    `json:"master_id"`
}

type UpdateMasterRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=255"`
	WorkStart   string `json:"work_start" validate:"required,datetime=15:04"`
	WorkEnd     string `json:"work_end" validate:"required,datetime=15:04"`
	BufferMin   int    `json:"buffer_min" validate:"required,oneof=5 10 15"`
}

type CreateServiceRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	DurationMin int    `json:"duration_min" validate:"required,gte=5,lte=480"`
}

type UpdateServiceRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	DurationMin int    `json:"duration_min" validate:"required,gte=5,lte=480"`
	Active      bool   `json:"active"`
}

type CreatePriceRequest struct {
	MasterID   int    `json:"master_id" validate:"required"`
	ServiceID  int    `json:"service_id" validate:"required"`
	Price      string `json:"price" validate:"required"`
	ActiveFrom string `json:"active_from" validate:"required,datetime=2006-01-02"`
}

type CreateBlackoutRequest struct {
	MasterID int    `json:"master_id" validate:"required"`
	StartTs  string `json:"start_ts" validate:"required"`
	EndTs    string `json:"end_ts" validate:"required"`
	Reason   string `json:"reason" validate:"max=1000"`
}

package dto

// RegisterDeviceRequest carries a push token registration.
type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"omitempty,oneof=ios android"`
}

// PushRequest is the admin push payload.
type PushRequest struct {
	Notification map[string]any `json:"notification" validate:"required"`
}
